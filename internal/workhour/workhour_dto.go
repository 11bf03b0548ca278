package workhour

type PeriodSummaryResponse struct {
	UserID          string      `json:"user_id"`
	UserName        string      `json:"user_name"`
	StartDate       string      `json:"start_date"`
	EndDate         string      `json:"end_date"`
	WorkedSeconds   int64       `json:"worked_seconds"`
	ExpectedSeconds int64       `json:"expected_seconds"`
	ExtraSeconds    int64       `json:"extra_seconds"`
	MissingSeconds  int64       `json:"missing_seconds"`
	DaysWorked      int         `json:"days_worked"`
	Absences        int         `json:"absences"`
	Days            []DayResult `json:"days,omitempty"`
}
