package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog rows are append-only; nothing in the system updates or deletes
// them.
type AuditLog struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	Action    string     `gorm:"column:action;type:varchar(60);not null"`
	Entity    string     `gorm:"column:entity;type:varchar(60);not null"`
	EntityID  *uuid.UUID `gorm:"column:entity_id;type:uuid"`
	Details   string     `gorm:"column:details;type:text"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
