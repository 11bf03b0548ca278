package audit

import "time"

type AuditLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  *string   `json:"entity_id,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toAuditLogResponse(entry AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:        entry.ID.String(),
		UserID:    entry.UserID.String(),
		Action:    entry.Action,
		Entity:    entry.Entity,
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt,
	}
	if entry.EntityID != nil {
		id := entry.EntityID.String()
		resp.EntityID = &id
	}
	return resp
}

func ToAuditLogResponseList(entries []AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toAuditLogResponse(entry))
	}
	return out
}
