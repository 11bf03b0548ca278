package biometric

import (
	"time"

	"github.com/google/uuid"
)

// UserBiometric maps a fingerprint template to a user. SensorIndex is the
// slot assigned by the device after enrollment; it is nil until the first
// successful sync and may briefly hold a negative placeholder while an
// index collision is being resolved.
type UserBiometric struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	SensorIndex  *int      `gorm:"column:sensor_index;uniqueIndex:uq_biometric_sensor_index"`
	TemplateData string    `gorm:"column:template_data;type:text;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (UserBiometric) TableName() string {
	return "user_biometrics"
}
