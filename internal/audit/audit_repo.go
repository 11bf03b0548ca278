package audit

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	FindByEntity(ctx context.Context, entity string, limit int) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByEntity(ctx context.Context, entity string, limit int) ([]AuditLog, error) {
	var rows []AuditLog
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}
