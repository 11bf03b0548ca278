package punch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/biometric"
	"github.com/viniciusmecosta/spe-api/internal/events"
	puncherrors "github.com/viniciusmecosta/spe-api/internal/punch/errors"
	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
	"github.com/viniciusmecosta/spe-api/internal/timerecord"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

// Result is what goes back to the device after an ingest attempt.
type Result struct {
	Success bool
	Message string
	Record  *timerecord.TimeRecord
}

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	Ingest(ctx context.Context, requestID string, sensorIndex int, deviceTimestamp int64) (Result, error)
}

type service struct {
	deduper    Deduper
	biometrics biometric.Repository
	users      user.Repository
	records    timerecord.Repository
	loc        *time.Location
	now        func() time.Time
	userLocks  sync.Map
	logger     *zap.Logger
}

func NewService(deduper Deduper, biometrics biometric.Repository, users user.Repository, records timerecord.Repository, loc *time.Location, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		deduper:    deduper,
		biometrics: biometrics,
		users:      users,
		records:    records,
		loc:        loc,
		now:        now,
		logger:     zap.L().Named("punch.service"),
	}
}

// lockUser serializes ingestion per user so concurrent punches cannot race
// on the ENTRY/EXIT toggle.
func (s *service) lockUser(userID string) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *service) Ingest(ctx context.Context, requestID string, sensorIndex int, deviceTimestamp int64) (Result, error) {
	seen, err := s.deduper.Seen(ctx, requestID)
	if err != nil {
		return Result{}, err
	}
	if seen {
		// Routine outcome on retry-prone device links, not an incident.
		s.logger.Info("duplicate punch request discarded", zap.String("request_id", requestID))
		return Result{Message: puncherrors.ErrDuplicateRequest.Message}, puncherrors.ErrDuplicateRequest
	}

	bio, err := s.biometrics.FindBySensorIndex(ctx, sensorIndex)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{Message: puncherrors.ErrUnknownBiometric.Message}, puncherrors.ErrUnknownBiometric
		}
		return Result{}, err
	}

	u, err := s.users.FindByID(ctx, bio.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{Message: puncherrors.ErrInactiveUser.Message}, puncherrors.ErrInactiveUser
		}
		return Result{}, err
	}
	if !u.IsActive {
		return Result{Message: puncherrors.ErrInactiveUser.Message}, puncherrors.ErrInactiveUser
	}

	unlock := s.lockUser(u.ID.String())
	defer unlock()

	recordType := timerecord.TypeEntry
	last, err := s.records.FindLastByUser(ctx, u.ID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Result{}, err
	}
	if err == nil && last.RecordType == timerecord.TypeEntry {
		recordType = timerecord.TypeExit
	}

	// Mark the key consumed before writing: if the write fails the window
	// stays closed, trading a lost punch for never storing it twice.
	if err := s.deduper.MarkSeen(ctx, requestID); err != nil {
		return Result{}, err
	}

	record := &timerecord.TimeRecord{
		ID:             uuid.New(),
		UserID:         u.ID,
		RecordType:     recordType,
		RecordDatetime: time.Unix(deviceTimestamp, 0).In(s.loc),
		IsManual:       false,
		IsTimeVerified: true,
		BiometricID:    &bio.ID,
	}
	if err := s.records.Create(ctx, record); err != nil {
		s.logger.Error("punch write failed after dedup mark",
			zap.String("request_id", requestID),
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
		return Result{}, err
	}

	s.logger.Info("punch ingested",
		zap.String("request_id", requestID),
		zap.String("user_id", u.ID.String()),
		zap.String("record_type", recordType),
	)
	return Result{
		Success: true,
		Message: "Ola, " + u.FirstName(),
		Record:  record,
	}, nil
}

// FeedbackFor converts an ingest outcome into a device-safe display frame.
// Internal failures never leak to the display: the device always gets a
// well-formed, truncated frame.
func FeedbackFor(requestID string, result Result, err error) events.FeedbackMessage {
	if err == nil {
		line2 := "Entrada"
		if result.Record != nil && result.Record.RecordType == timerecord.TypeExit {
			line2 = "Saida"
		}
		return events.NewFeedback(requestID, result.Message, line2, events.SuccessActions())
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return events.NewFeedback(requestID, appErr.Message, "", events.ErrorActions())
	}
	return events.NewFeedback(requestID, "Erro Interno", "Contate Admin", events.ErrorActions())
}
