package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Log(ctx context.Context, userID uuid.UUID, action, entity string, entityID *uuid.UUID, details string)
	ListByEntity(ctx context.Context, entity string, limit int) ([]AuditLog, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{repo: repo, logger: zap.L().Named("audit.service")}
}

// Log writes an audit row. A failed audit write is logged and swallowed:
// auditing must never roll back the action it describes.
func (s *service) Log(ctx context.Context, userID uuid.UUID, action, entity string, entityID *uuid.UUID, details string) {
	entry := &AuditLog{
		ID:       uuid.New(),
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("audit event",
		zap.String("user_id", userID.String()),
		zap.String("action", action),
		zap.String("entity", entity),
	)
}

func (s *service) ListByEntity(ctx context.Context, entity string, limit int) ([]AuditLog, error) {
	return s.repo.FindByEntity(ctx, entity, limit)
}
