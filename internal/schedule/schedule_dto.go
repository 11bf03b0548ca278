package schedule

type ScheduleEntryRequest struct {
	DayOfWeek  int     `json:"day_of_week"`
	DailyHours float64 `json:"daily_hours"`
}

type ReplaceSchedulesRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" binding:"required"`
}

type ScheduleEntryResponse struct {
	DayOfWeek  int     `json:"day_of_week"`
	DailyHours float64 `json:"daily_hours"`
}

type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}
