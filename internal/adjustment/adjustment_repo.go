package adjustment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=adjustment_repo.go -destination=mock/adjustment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *AdjustmentRequest) error
	FindByID(ctx context.Context, id string) (*AdjustmentRequest, error)
	FindByUser(ctx context.Context, userID string) ([]AdjustmentRequest, error)
	FindByStatus(ctx context.Context, status string) ([]AdjustmentRequest, error)
	FindApprovedByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]AdjustmentRequest, error)
	Update(ctx context.Context, a *AdjustmentRequest) error
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

func (r *repository) Create(ctx context.Context, a *AdjustmentRequest) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AdjustmentRequest, error) {
	var a AdjustmentRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]AdjustmentRequest, error) {
	var rows []AdjustmentRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("target_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]AdjustmentRequest, error) {
	var rows []AdjustmentRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindApprovedByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]AdjustmentRequest, error) {
	var rows []AdjustmentRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusApproved).
		Where("target_date BETWEEN ? AND ?", start, end).
		Order("target_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *AdjustmentRequest) error {
	return r.db.WithContext(ctx).Save(a).Error
}
