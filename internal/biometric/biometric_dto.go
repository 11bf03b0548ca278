package biometric

import "time"

type EnrollRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	TemplateData string `json:"template_data" binding:"required"`
}

type BiometricResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	SensorIndex *int   `json:"sensor_index"`
	CreatedAt   string `json:"created_at"`
}

type SyncStartedResponse struct {
	Templates int `json:"templates"`
}

func mapToResponse(b UserBiometric) BiometricResponse {
	return BiometricResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		SensorIndex: b.SensorIndex,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(rows []UserBiometric) []BiometricResponse {
	resp := make([]BiometricResponse, len(rows))
	for i, b := range rows {
		resp[i] = mapToResponse(b)
	}
	return resp
}
