package biometric

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=biometric_repo.go -destination=mock/biometric_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, b *UserBiometric) error
	FindByID(ctx context.Context, id string) (*UserBiometric, error)
	FindByUser(ctx context.Context, userID string) ([]UserBiometric, error)
	FindBySensorIndex(ctx context.Context, sensorIndex int) (*UserBiometric, error)
	FindAllEnrolled(ctx context.Context) ([]UserBiometric, error)
	UpdateSensorIndex(ctx context.Context, id string, sensorIndex *int) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, b *UserBiometric) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*UserBiometric, error) {
	var b UserBiometric
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	return &b, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]UserBiometric, error) {
	var rows []UserBiometric
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *repository) FindBySensorIndex(ctx context.Context, sensorIndex int) (*UserBiometric, error) {
	var b UserBiometric
	err := r.db.WithContext(ctx).Where("sensor_index = ?", sensorIndex).First(&b).Error
	return &b, err
}

func (r *repository) FindAllEnrolled(ctx context.Context) ([]UserBiometric, error) {
	var rows []UserBiometric
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateSensorIndex(ctx context.Context, id string, sensorIndex *int) error {
	return r.db.WithContext(ctx).
		Model(&UserBiometric{}).
		Where("id = ?", id).
		Update("sensor_index", sensorIndex).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserBiometric{}).Error
}
