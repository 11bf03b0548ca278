package schedule

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	FindByUser(ctx context.Context, userID string) ([]WorkSchedule, error)
	ReplaceByUser(ctx context.Context, userID string, entries []WorkSchedule) error
	FindHolidaysInRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	CreateHoliday(ctx context.Context, h *Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]WorkSchedule, error) {
	var rows []WorkSchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC").
		Find(&rows).Error
	return rows, err
}

// ReplaceByUser discards the user's previous entries and installs the new
// set in one transaction, so readers never observe a partial schedule.
func (r *repository) ReplaceByUser(ctx context.Context, userID string, entries []WorkSchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&WorkSchedule{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *repository) FindHolidaysInRange(ctx context.Context, start, end time.Time) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateHoliday(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) DeleteHoliday(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Holiday{}).Error
}
