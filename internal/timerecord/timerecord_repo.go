package timerecord

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timerecord_repo.go -destination=mock/timerecord_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *TimeRecord) error
	FindByID(ctx context.Context, id string) (*TimeRecord, error)
	FindLastByUser(ctx context.Context, userID string) (*TimeRecord, error)
	// Range queries are half-open: start inclusive, end exclusive, so a
	// caller passing midnight boundaries never loses sub-second stragglers.
	FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]TimeRecord, error)
	FindByUsersAndRange(ctx context.Context, userIDs []string, start, end time.Time) ([]TimeRecord, error)
	Update(ctx context.Context, record *TimeRecord) error
	Delete(ctx context.Context, id string) error

	CreateManualAdjustment(ctx context.Context, adj *ManualAdjustment) error

	CreateAuthorization(ctx context.Context, auth *ManualPunchAuthorization) error
	DeleteAuthorizationsByUser(ctx context.Context, userID string) error
	HasActiveAuthorization(ctx context.Context, userID string, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository to a running transaction so every query
// issued through it joins that transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *TimeRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeRecord, error) {
	var record TimeRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	return &record, err
}

func (r *repository) FindLastByUser(ctx context.Context, userID string) (*TimeRecord, error) {
	var record TimeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("record_datetime DESC").
		First(&record).Error
	return &record, err
}

func (r *repository) FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]TimeRecord, error) {
	var rows []TimeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("record_datetime >= ? AND record_datetime < ?", start, end).
		Order("record_datetime ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByUsersAndRange(ctx context.Context, userIDs []string, start, end time.Time) ([]TimeRecord, error) {
	var rows []TimeRecord
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("record_datetime >= ? AND record_datetime < ?", start, end).
		Order("user_id ASC, record_datetime ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, record *TimeRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&TimeRecord{}).Error
}

func (r *repository) CreateManualAdjustment(ctx context.Context, adj *ManualAdjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

func (r *repository) CreateAuthorization(ctx context.Context, auth *ManualPunchAuthorization) error {
	return r.db.WithContext(ctx).Create(auth).Error
}

func (r *repository) DeleteAuthorizationsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&ManualPunchAuthorization{}).Error
}

func (r *repository) HasActiveAuthorization(ctx context.Context, userID string, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ManualPunchAuthorization{}).
		Where("user_id = ?", userID).
		Where("valid_from <= ?", at).
		Where("valid_until >= ?", at).
		Count(&count).Error
	return count > 0, err
}
