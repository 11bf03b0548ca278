package timerecord

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeEntry = "ENTRY"
	TypeExit  = "EXIT"
)

// TimeRecord is a single punch. Ordering by RecordDatetime within a user
// defines the punch sequence; records are only removed by explicit,
// audited administrative deletes.
type TimeRecord struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID            uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_time_records_user_datetime"`
	RecordType        string     `gorm:"column:record_type;type:varchar(10);not null"`
	RecordDatetime    time.Time  `gorm:"column:record_datetime;type:timestamptz;not null;index:idx_time_records_user_datetime"`
	IsManual          bool       `gorm:"column:is_manual;not null;default:false"`
	IsTimeVerified    bool       `gorm:"column:is_time_verified;not null;default:true"`
	EditedBy          *uuid.UUID `gorm:"column:edited_by;type:uuid"`
	EditJustification *string    `gorm:"column:edit_justification;type:varchar(30)"`
	EditReason        *string    `gorm:"column:edit_reason;type:text"`
	OriginalTimestamp *time.Time `gorm:"column:original_timestamp;type:timestamptz"`
	BiometricID       *uuid.UUID `gorm:"column:biometric_id;type:uuid"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (TimeRecord) TableName() string {
	return "time_records"
}

// OppositeType flips ENTRY and EXIT.
func OppositeType(recordType string) string {
	if recordType == TypeEntry {
		return TypeExit
	}
	return TypeEntry
}

// ManualAdjustment is the append-only audit row written whenever a
// record's type is toggled.
type ManualAdjustment struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TimeRecordID uuid.UUID `gorm:"column:time_record_id;type:uuid;not null;index"`
	PreviousType string    `gorm:"column:previous_type;type:varchar(10);not null"`
	NewType      string    `gorm:"column:new_type;type:varchar(10);not null"`
	AdjustedBy   uuid.UUID `gorm:"column:adjusted_by_user_id;type:uuid;not null"`
	AdjustedAt   time.Time `gorm:"column:adjusted_at;not null"`
}

func (ManualAdjustment) TableName() string {
	return "manual_adjustments"
}

// ManualPunchAuthorization is a manager-granted window during which a
// user may punch through the web UI instead of the biometric device.
type ManualPunchAuthorization struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	AuthorizedBy uuid.UUID `gorm:"column:authorized_by;type:uuid;not null"`
	ValidFrom    time.Time `gorm:"column:valid_from;type:timestamptz;not null"`
	ValidUntil   time.Time `gorm:"column:valid_until;type:timestamptz;not null"`
	Reason       string    `gorm:"column:reason;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (ManualPunchAuthorization) TableName() string {
	return "manual_punch_authorizations"
}
