package payrollperiod

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payrollperiod_repo.go -destination=mock/payrollperiod_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, closure *PayrollClosure) error
	FindByPeriod(ctx context.Context, month, year int) (*PayrollClosure, error)
	DeleteByPeriod(ctx context.Context, month, year int) error
	FindAll(ctx context.Context) ([]PayrollClosure, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, closure *PayrollClosure) error {
	return r.db.WithContext(ctx).Create(closure).Error
}

func (r *repository) FindByPeriod(ctx context.Context, month, year int) (*PayrollClosure, error) {
	var row PayrollClosure
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Where("year = ?", year).
		First(&row).Error
	return &row, err
}

func (r *repository) DeleteByPeriod(ctx context.Context, month, year int) error {
	return r.db.WithContext(ctx).
		Where("month = ?", month).
		Where("year = ?", year).
		Delete(&PayrollClosure{}).Error
}

func (r *repository) FindAll(ctx context.Context) ([]PayrollClosure, error) {
	var rows []PayrollClosure
	err := r.db.WithContext(ctx).Order("year DESC, month DESC").Find(&rows).Error
	return rows, err
}
