package timerecord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/audit"
	"github.com/viniciusmecosta/spe-api/internal/payrollperiod"
	timerecorderrors "github.com/viniciusmecosta/spe-api/internal/timerecord/errors"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

//go:generate mockgen -source=timerecord_service.go -destination=mock/timerecord_service_mock.go -package=mock
type Service interface {
	RegisterEntry(ctx context.Context, userID uuid.UUID) (RecordResponse, error)
	RegisterExit(ctx context.Context, userID uuid.UUID) (RecordResponse, error)
	ToggleType(ctx context.Context, recordID string, actorID uuid.UUID, actorRole string) (RecordResponse, error)
	GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]RecordResponse, error)
	AdminCreate(ctx context.Context, actorID uuid.UUID, req AdminCreateRecordRequest) (RecordResponse, error)
	AdminUpdate(ctx context.Context, recordID string, actorID uuid.UUID, req AdminUpdateRecordRequest) (RecordResponse, error)
	AdminDelete(ctx context.Context, recordID string, actorID uuid.UUID, req AdminDeleteRecordRequest) error
	GrantManualAuth(ctx context.Context, userID string, actorID uuid.UUID, req GrantManualAuthRequest) error
	RevokeManualAuth(ctx context.Context, userID string, actorID uuid.UUID) error
}

type service struct {
	repo    Repository
	gate    payrollperiod.Service
	auditor audit.Service
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(repo Repository, gate payrollperiod.Service, auditor audit.Service, loc *time.Location, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    repo,
		gate:    gate,
		auditor: auditor,
		loc:     loc,
		now:     now,
		logger:  zap.L().Named("timerecord.service"),
	}
}

func (s *service) RegisterEntry(ctx context.Context, userID uuid.UUID) (RecordResponse, error) {
	return s.registerManual(ctx, userID, TypeEntry)
}

func (s *service) RegisterExit(ctx context.Context, userID uuid.UUID) (RecordResponse, error) {
	return s.registerManual(ctx, userID, TypeExit)
}

func (s *service) registerManual(ctx context.Context, userID uuid.UUID, recordType string) (RecordResponse, error) {
	now := s.now().In(s.loc)

	authorized, err := s.repo.HasActiveAuthorization(ctx, userID.String(), now)
	if err != nil {
		return RecordResponse{}, err
	}
	if !authorized {
		return RecordResponse{}, timerecorderrors.ErrManualNotAuthorized
	}

	if err := s.gate.Guard(ctx, now); err != nil {
		return RecordResponse{}, err
	}

	last, err := s.repo.FindLastByUser(ctx, userID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return RecordResponse{}, err
	}
	if recordType == TypeEntry {
		if last != nil && err == nil && last.RecordType == TypeEntry {
			return RecordResponse{}, timerecorderrors.ErrLastWasEntry
		}
	} else {
		if errors.Is(err, gorm.ErrRecordNotFound) || last.RecordType == TypeExit {
			return RecordResponse{}, timerecorderrors.ErrLastWasExit
		}
	}

	record := &TimeRecord{
		ID:             uuid.New(),
		UserID:         userID,
		RecordType:     recordType,
		RecordDatetime: now,
		IsManual:       true,
		IsTimeVerified: true,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("manual punch registered",
		zap.String("user_id", userID.String()),
		zap.String("record_type", recordType),
	)
	return mapToResponse(*record), nil
}

func (s *service) ToggleType(ctx context.Context, recordID string, actorID uuid.UUID, actorRole string) (RecordResponse, error) {
	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return RecordResponse{}, err
	}

	if record.UserID != actorID && !user.AtLeastManager(actorRole) {
		return RecordResponse{}, timerecorderrors.ErrToggleForbidden
	}

	if err := s.gate.Guard(ctx, record.RecordDatetime.In(s.loc)); err != nil {
		return RecordResponse{}, err
	}

	previousType := record.RecordType
	record.RecordType = OppositeType(previousType)

	if err := s.repo.Update(ctx, record); err != nil {
		return RecordResponse{}, err
	}

	adj := &ManualAdjustment{
		ID:           uuid.New(),
		TimeRecordID: record.ID,
		PreviousType: previousType,
		NewType:      record.RecordType,
		AdjustedBy:   actorID,
		AdjustedAt:   s.now(),
	}
	if err := s.repo.CreateManualAdjustment(ctx, adj); err != nil {
		return RecordResponse{}, err
	}

	s.auditor.Log(ctx, actorID, "TOGGLE_RECORD_TYPE", "TIME_RECORD", &record.ID,
		fmt.Sprintf("%s -> %s", previousType, record.RecordType))

	return mapToResponse(*record), nil
}

func (s *service) GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]RecordResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, timerecorderrors.ErrInvalidUserID
	}
	if start.After(end) {
		return nil, timerecorderrors.ErrInvalidDateRange
	}
	rows, err := s.repo.FindByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) AdminCreate(ctx context.Context, actorID uuid.UUID, req AdminCreateRecordRequest) (RecordResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return RecordResponse{}, timerecorderrors.ErrInvalidUserID
	}
	if req.RecordType != TypeEntry && req.RecordType != TypeExit {
		return RecordResponse{}, timerecorderrors.ErrInvalidRecordType
	}
	datetime, err := s.parseDatetime(req.RecordDatetime)
	if err != nil {
		return RecordResponse{}, err
	}
	if req.EditJustification == "" || req.EditReason == "" {
		return RecordResponse{}, timerecorderrors.ErrJustificationRequired
	}

	if err := s.gate.Guard(ctx, datetime); err != nil {
		return RecordResponse{}, err
	}

	record := &TimeRecord{
		ID:                uuid.New(),
		UserID:            userID,
		RecordType:        req.RecordType,
		RecordDatetime:    datetime,
		IsManual:          true,
		IsTimeVerified:    true,
		EditedBy:          &actorID,
		EditJustification: &req.EditJustification,
		EditReason:        &req.EditReason,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return RecordResponse{}, err
	}

	s.auditor.Log(ctx, actorID, "CREATE_RECORD_ADMIN", "TIME_RECORD", &record.ID, req.EditReason)
	return mapToResponse(*record), nil
}

func (s *service) AdminUpdate(ctx context.Context, recordID string, actorID uuid.UUID, req AdminUpdateRecordRequest) (RecordResponse, error) {
	if req.RecordType != TypeEntry && req.RecordType != TypeExit {
		return RecordResponse{}, timerecorderrors.ErrInvalidRecordType
	}
	datetime, err := s.parseDatetime(req.RecordDatetime)
	if err != nil {
		return RecordResponse{}, err
	}
	if req.EditJustification == "" || req.EditReason == "" {
		return RecordResponse{}, timerecorderrors.ErrJustificationRequired
	}

	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return RecordResponse{}, err
	}

	// When the update moves the record across months, both the period it
	// leaves and the period it enters must be open.
	if err := s.gate.Guard(ctx, record.RecordDatetime.In(s.loc)); err != nil {
		return RecordResponse{}, err
	}
	if err := s.gate.Guard(ctx, datetime); err != nil {
		return RecordResponse{}, err
	}

	original := record.RecordDatetime
	record.RecordType = req.RecordType
	record.RecordDatetime = datetime
	record.EditedBy = &actorID
	record.EditJustification = &req.EditJustification
	record.EditReason = &req.EditReason
	if record.OriginalTimestamp == nil {
		record.OriginalTimestamp = &original
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return RecordResponse{}, err
	}

	s.auditor.Log(ctx, actorID, "UPDATE_RECORD_ADMIN", "TIME_RECORD", &record.ID, req.EditReason)
	return mapToResponse(*record), nil
}

func (s *service) AdminDelete(ctx context.Context, recordID string, actorID uuid.UUID, req AdminDeleteRecordRequest) error {
	if req.EditJustification == "" || req.EditReason == "" {
		return timerecorderrors.ErrJustificationRequired
	}

	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return err
	}

	if err := s.gate.Guard(ctx, record.RecordDatetime.In(s.loc)); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, recordID); err != nil {
		return err
	}

	s.auditor.Log(ctx, actorID, "DELETE_RECORD_ADMIN", "TIME_RECORD", &record.ID,
		fmt.Sprintf("[%s] %s", req.EditJustification, req.EditReason))
	return nil
}

func (s *service) GrantManualAuth(ctx context.Context, userID string, actorID uuid.UUID, req GrantManualAuthRequest) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return timerecorderrors.ErrInvalidUserID
	}
	from, err := s.parseDatetime(req.ValidFrom)
	if err != nil {
		return err
	}
	until, err := s.parseDatetime(req.ValidUntil)
	if err != nil {
		return err
	}
	if !until.After(from) {
		return timerecorderrors.ErrInvalidAuthWindow
	}

	auth := &ManualPunchAuthorization{
		ID:           uuid.New(),
		UserID:       userUUID,
		AuthorizedBy: actorID,
		ValidFrom:    from,
		ValidUntil:   until,
		Reason:       req.Reason,
	}
	if err := s.repo.CreateAuthorization(ctx, auth); err != nil {
		return err
	}

	s.auditor.Log(ctx, actorID, "GRANT_MANUAL_AUTH", "MANUAL_PUNCH_AUTH", &auth.ID, req.Reason)
	return nil
}

func (s *service) RevokeManualAuth(ctx context.Context, userID string, actorID uuid.UUID) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return timerecorderrors.ErrInvalidUserID
	}
	if err := s.repo.DeleteAuthorizationsByUser(ctx, userID); err != nil {
		return err
	}
	s.auditor.Log(ctx, actorID, "REVOKE_MANUAL_AUTH", "MANUAL_PUNCH_AUTH", &userUUID, "")
	return nil
}

func (s *service) findRecord(ctx context.Context, recordID string) (*TimeRecord, error) {
	if _, err := uuid.Parse(recordID); err != nil {
		return nil, timerecorderrors.ErrRecordNotFound
	}
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timerecorderrors.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *service) parseDatetime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, timerecorderrors.ErrInvalidDatetime
	}
	return t.In(s.loc), nil
}
