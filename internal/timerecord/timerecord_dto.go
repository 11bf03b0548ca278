package timerecord

import "time"

type AdminCreateRecordRequest struct {
	UserID            string `json:"user_id" binding:"required"`
	RecordType        string `json:"record_type" binding:"required"`
	RecordDatetime    string `json:"record_datetime" binding:"required"`
	EditJustification string `json:"edit_justification" binding:"required"`
	EditReason        string `json:"edit_reason" binding:"required"`
}

type AdminUpdateRecordRequest struct {
	RecordType        string `json:"record_type" binding:"required"`
	RecordDatetime    string `json:"record_datetime" binding:"required"`
	EditJustification string `json:"edit_justification" binding:"required"`
	EditReason        string `json:"edit_reason" binding:"required"`
}

type AdminDeleteRecordRequest struct {
	EditJustification string `json:"edit_justification" binding:"required"`
	EditReason        string `json:"edit_reason" binding:"required"`
}

type GrantManualAuthRequest struct {
	ValidFrom  string `json:"valid_from" binding:"required"`
	ValidUntil string `json:"valid_until" binding:"required"`
	Reason     string `json:"reason"`
}

type RecordResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	RecordType     string `json:"record_type"`
	RecordDatetime string `json:"record_datetime"`
	IsManual       bool   `json:"is_manual"`
	IsTimeVerified bool   `json:"is_time_verified"`
	EditedBy       string `json:"edited_by,omitempty"`
}

func mapToResponse(r TimeRecord) RecordResponse {
	resp := RecordResponse{
		ID:             r.ID.String(),
		UserID:         r.UserID.String(),
		RecordType:     r.RecordType,
		RecordDatetime: r.RecordDatetime.Format(time.RFC3339),
		IsManual:       r.IsManual,
		IsTimeVerified: r.IsTimeVerified,
	}
	if r.EditedBy != nil {
		resp.EditedBy = r.EditedBy.String()
	}
	return resp
}

func mapToListResponse(rows []TimeRecord) []RecordResponse {
	resp := make([]RecordResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
