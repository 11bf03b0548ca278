package adjustment

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeMissingEntry = "MISSING_ENTRY"
	TypeMissingExit  = "MISSING_EXIT"
	TypeBoth         = "BOTH"
	TypeCertificate  = "CERTIFICATE"
	TypeWaiver       = "WAIVER"
	TypeOther        = "OTHER"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// AdjustmentRequest is an employee- or manager-filed correction for a
// day. PENDING transitions exactly once to APPROVED or REJECTED; both are
// terminal. EntryTime/ExitTime are wall-clock "HH:MM" strings interpreted
// against TargetDate in the system timezone at approval time.
type AdjustmentRequest struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	AdjustmentType string     `gorm:"column:adjustment_type;type:varchar(20);not null"`
	TargetDate     time.Time  `gorm:"column:target_date;type:date;not null;index"`
	EntryTime      *string    `gorm:"column:entry_time;type:varchar(5)"`
	ExitTime       *string    `gorm:"column:exit_time;type:varchar(5)"`
	AmountHours    *float64   `gorm:"column:amount_hours"`
	Reason         string     `gorm:"column:reason;type:text"`
	Status         string     `gorm:"column:status;type:varchar(10);not null;default:PENDING"`
	ManagerID      *uuid.UUID `gorm:"column:manager_id;type:uuid"`
	ManagerComment *string    `gorm:"column:manager_comment;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (AdjustmentRequest) TableName() string {
	return "adjustment_requests"
}

func ValidType(t string) bool {
	switch t {
	case TypeMissingEntry, TypeMissingExit, TypeBoth, TypeCertificate, TypeWaiver, TypeOther:
		return true
	}
	return false
}

// Excuses reports whether an approved request of this type exempts the
// day from absence counting.
func (a AdjustmentRequest) Excuses() bool {
	return a.AdjustmentType == TypeCertificate || a.AdjustmentType == TypeWaiver
}
