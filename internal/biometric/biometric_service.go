package biometric

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	biometricerrors "github.com/viniciusmecosta/spe-api/internal/biometric/errors"
	"github.com/viniciusmecosta/spe-api/internal/events"
	"github.com/viniciusmecosta/spe-api/internal/messaging/kafka/producer"
	timerecorderrors "github.com/viniciusmecosta/spe-api/internal/timerecord/errors"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

// The sensor flash writes slowly; pushing templates faster than this
// makes the device drop frames.
const syncTemplatesPerSecond = 2

//go:generate mockgen -source=biometric_service.go -destination=mock/biometric_service_mock.go -package=mock
type Service interface {
	Enroll(ctx context.Context, req EnrollRequest) (BiometricResponse, error)
	GetByUser(ctx context.Context, userID string) ([]BiometricResponse, error)
	Delete(ctx context.Context, id string) error
	// SyncAll streams every enrolled template to the device, throttled,
	// closing with a SyncEnd frame carrying the total pushed.
	SyncAll(ctx context.Context) (SyncStartedResponse, error)
	ProcessSyncAck(ctx context.Context, ack events.BiometricSyncAck) error
	SaveEnrolled(ctx context.Context, result events.EnrollResult) error
}

type service struct {
	repo      Repository
	users     user.Repository
	publisher producer.DevicePublisher
	limiter   *rate.Limiter
	logger    *zap.Logger
}

func NewService(repo Repository, users user.Repository, publisher producer.DevicePublisher) Service {
	return &service{
		repo:      repo,
		users:     users,
		publisher: publisher,
		limiter:   rate.NewLimiter(rate.Limit(syncTemplatesPerSecond), 1),
		logger:    zap.L().Named("biometric.service"),
	}
}

func (s *service) Enroll(ctx context.Context, req EnrollRequest) (BiometricResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return BiometricResponse{}, timerecorderrors.ErrInvalidUserID
	}
	if req.TemplateData == "" {
		return BiometricResponse{}, biometricerrors.ErrTemplateRequired
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BiometricResponse{}, biometricerrors.ErrUserNotFound
		}
		return BiometricResponse{}, err
	}

	b := &UserBiometric{
		ID:           uuid.New(),
		UserID:       userID,
		TemplateData: req.TemplateData,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return BiometricResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]BiometricResponse, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return biometricerrors.ErrBiometricNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SyncAll(ctx context.Context) (SyncStartedResponse, error) {
	templates, err := s.repo.FindAllEnrolled(ctx)
	if err != nil {
		return SyncStartedResponse{}, err
	}

	pushed := 0
	for _, t := range templates {
		if err := s.limiter.Wait(ctx); err != nil {
			return SyncStartedResponse{}, err
		}
		err := s.publisher.PublishSyncData(ctx, events.BiometricSyncData{
			BiometricID:  t.ID.String(),
			TemplateData: t.TemplateData,
			UserID:       t.UserID.String(),
		})
		if err != nil {
			s.logger.Error("sync data publish failed",
				zap.String("biometric_id", t.ID.String()),
				zap.Error(err),
			)
			return SyncStartedResponse{}, err
		}
		pushed++
	}

	if err := s.publisher.PublishSyncEnd(ctx, events.SyncEnd{Total: pushed}); err != nil {
		return SyncStartedResponse{}, err
	}

	s.logger.Info("biometric sync fan-out complete", zap.Int("templates", pushed))
	return SyncStartedResponse{Templates: pushed}, nil
}

// ProcessSyncAck persists the device-assigned slot. When the slot is
// already held by a different template, the displaced row gets a negative
// placeholder first so the unique index never sees two rows on the same
// positive slot.
func (s *service) ProcessSyncAck(ctx context.Context, ack events.BiometricSyncAck) error {
	if !ack.Success {
		s.logger.Warn("device rejected template",
			zap.String("biometric_id", ack.BiometricID),
			zap.String("error", ack.Error),
		)
		return nil
	}

	target, err := s.repo.FindByID(ctx, ack.BiometricID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return biometricerrors.ErrBiometricNotFound
		}
		return err
	}

	holder, err := s.repo.FindBySensorIndex(ctx, ack.SensorIndex)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && holder.ID != target.ID {
		placeholder := -ack.SensorIndex - 1
		if err := s.repo.UpdateSensorIndex(ctx, holder.ID.String(), &placeholder); err != nil {
			return err
		}
		s.logger.Info("sensor index collision displaced",
			zap.Int("sensor_index", ack.SensorIndex),
			zap.String("displaced_id", holder.ID.String()),
		)
	}

	idx := ack.SensorIndex
	if err := s.repo.UpdateSensorIndex(ctx, target.ID.String(), &idx); err != nil {
		return err
	}

	s.logger.Info("sensor index assigned",
		zap.String("biometric_id", ack.BiometricID),
		zap.Int("sensor_index", ack.SensorIndex),
	)
	return nil
}

// SaveEnrolled stores a template captured directly on the device.
func (s *service) SaveEnrolled(ctx context.Context, result events.EnrollResult) error {
	if !result.Success {
		s.logger.Warn("device enrollment failed",
			zap.String("user_id", result.UserID),
			zap.String("error", result.Error),
		)
		return nil
	}

	userID, err := uuid.Parse(result.UserID)
	if err != nil {
		return timerecorderrors.ErrInvalidUserID
	}

	idx := result.SensorIndex
	b := &UserBiometric{
		ID:           uuid.New(),
		UserID:       userID,
		SensorIndex:  &idx,
		TemplateData: result.TemplateData,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return err
	}

	s.logger.Info("device enrollment stored",
		zap.String("user_id", result.UserID),
		zap.Int("sensor_index", result.SensorIndex),
	)
	return nil
}
