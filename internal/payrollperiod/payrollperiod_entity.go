package payrollperiod

import (
	"time"

	"github.com/google/uuid"
)

// PayrollClosure marks a (month, year) as CLOSED. A period with no row is
// OPEN; reopening deletes the row, so closing again later is possible.
type PayrollClosure struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Month    int       `gorm:"column:month;not null;uniqueIndex:uq_payroll_closure_period"`
	Year     int       `gorm:"column:year;not null;uniqueIndex:uq_payroll_closure_period"`
	ClosedBy uuid.UUID `gorm:"column:closed_by_user_id;type:uuid;not null"`
	ClosedAt time.Time `gorm:"column:closed_at;not null"`
}

func (PayrollClosure) TableName() string {
	return "payroll_closures"
}
