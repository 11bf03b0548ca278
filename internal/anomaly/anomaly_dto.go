package anomaly

type DayAnomaliesResponse struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Date      string    `json:"date"`
	Anomalies []Anomaly `json:"anomalies"`
}
