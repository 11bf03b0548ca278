package payrollperiod

type ClosePeriodRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=1"`
}

type PeriodResponse struct {
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	IsClosed bool   `json:"is_closed"`
	ClosedBy string `json:"closed_by,omitempty"`
	ClosedAt string `json:"closed_at,omitempty"`
}
