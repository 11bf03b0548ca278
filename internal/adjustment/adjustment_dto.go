package adjustment

import "time"

type CreateAdjustmentRequest struct {
	UserID         string   `json:"user_id"`
	AdjustmentType string   `json:"adjustment_type" binding:"required"`
	TargetDate     string   `json:"target_date" binding:"required"`
	EntryTime      *string  `json:"entry_time"`
	ExitTime       *string  `json:"exit_time"`
	AmountHours    *float64 `json:"amount_hours"`
	Reason         string   `json:"reason" binding:"required"`
}

type ReviewAdjustmentRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

type AdjustmentResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	AdjustmentType string   `json:"adjustment_type"`
	TargetDate     string   `json:"target_date"`
	EntryTime      *string  `json:"entry_time,omitempty"`
	ExitTime       *string  `json:"exit_time,omitempty"`
	AmountHours    *float64 `json:"amount_hours,omitempty"`
	Reason         string   `json:"reason"`
	Status         string   `json:"status"`
	ManagerID      string   `json:"manager_id,omitempty"`
	ManagerComment string   `json:"manager_comment,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

func mapToResponse(a AdjustmentRequest) AdjustmentResponse {
	resp := AdjustmentResponse{
		ID:             a.ID.String(),
		UserID:         a.UserID.String(),
		AdjustmentType: a.AdjustmentType,
		TargetDate:     a.TargetDate.Format("2006-01-02"),
		EntryTime:      a.EntryTime,
		ExitTime:       a.ExitTime,
		AmountHours:    a.AmountHours,
		Reason:         a.Reason,
		Status:         a.Status,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
	if a.ManagerID != nil {
		resp.ManagerID = a.ManagerID.String()
	}
	if a.ManagerComment != nil {
		resp.ManagerComment = *a.ManagerComment
	}
	return resp
}

func mapToListResponse(rows []AdjustmentRequest) []AdjustmentResponse {
	resp := make([]AdjustmentResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp
}
