package schedule

import (
	"time"

	"github.com/google/uuid"
)

// WorkSchedule holds the expected daily hours for one weekday. At most one
// row exists per (user, day_of_week); updates replace the whole set.
type WorkSchedule struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_schedule_user_dow"`
	DayOfWeek  int       `gorm:"column:day_of_week;not null;uniqueIndex:uq_schedule_user_dow"`
	DailyHours float64   `gorm:"column:daily_hours;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}

type Holiday struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Date      time.Time `gorm:"column:date;type:date;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:varchar(120);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}
