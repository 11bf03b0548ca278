package adjustment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	adjustmenterrors "github.com/viniciusmecosta/spe-api/internal/adjustment/errors"
	"github.com/viniciusmecosta/spe-api/internal/audit"
	"github.com/viniciusmecosta/spe-api/internal/payrollperiod"
	"github.com/viniciusmecosta/spe-api/internal/timerecord"
	timerecorderrors "github.com/viniciusmecosta/spe-api/internal/timerecord/errors"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

//go:generate mockgen -source=adjustment_service.go -destination=mock/adjustment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole string, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	GetMine(ctx context.Context, userID string) ([]AdjustmentResponse, error)
	GetPending(ctx context.Context) ([]AdjustmentResponse, error)
	Review(ctx context.Context, id string, managerID uuid.UUID, managerRole string, req ReviewAdjustmentRequest) (AdjustmentResponse, error)
	// ApprovedForRange feeds the balance calculator; its output is treated
	// as ground truth overrides for the covered days.
	ApprovedForRange(ctx context.Context, userID string, start, end time.Time) ([]AdjustmentRequest, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	records timerecord.Repository
	gate    payrollperiod.Service
	auditor audit.Service
	loc     *time.Location
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, records timerecord.Repository, gate payrollperiod.Service, auditor audit.Service, loc *time.Location) Service {
	return &service{
		db:      db,
		repo:    repo,
		records: records,
		gate:    gate,
		auditor: auditor,
		loc:     loc,
		logger:  zap.L().Named("adjustment.service"),
	}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, actorRole string, req CreateAdjustmentRequest) (AdjustmentResponse, error) {
	targetUserID := actorID
	if req.UserID != "" && req.UserID != actorID.String() {
		if !user.AtLeastManager(actorRole) {
			return AdjustmentResponse{}, adjustmenterrors.ErrNotOwner
		}
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			return AdjustmentResponse{}, timerecorderrors.ErrInvalidUserID
		}
		targetUserID = parsed
	}

	if !ValidType(req.AdjustmentType) {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidAdjustmentType
	}

	targetDate, err := time.ParseInLocation("2006-01-02", req.TargetDate, s.loc)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidTargetDate
	}

	if err := validateTimes(req.AdjustmentType, req.EntryTime, req.ExitTime); err != nil {
		return AdjustmentResponse{}, err
	}

	if err := s.gate.Guard(ctx, targetDate); err != nil {
		return AdjustmentResponse{}, err
	}

	adj := &AdjustmentRequest{
		ID:             uuid.New(),
		UserID:         targetUserID,
		AdjustmentType: req.AdjustmentType,
		TargetDate:     targetDate,
		EntryTime:      req.EntryTime,
		ExitTime:       req.ExitTime,
		AmountHours:    req.AmountHours,
		Reason:         req.Reason,
		Status:         StatusPending,
	}
	if err := s.repo.Create(ctx, adj); err != nil {
		return AdjustmentResponse{}, err
	}

	s.logger.Info("adjustment request filed",
		zap.String("user_id", targetUserID.String()),
		zap.String("type", req.AdjustmentType),
		zap.String("target_date", req.TargetDate),
	)
	return mapToResponse(*adj), nil
}

func validateTimes(adjustmentType string, entryTime, exitTime *string) error {
	for _, v := range []*string{entryTime, exitTime} {
		if v == nil {
			continue
		}
		if _, err := time.Parse("15:04", *v); err != nil {
			return adjustmenterrors.ErrInvalidTime
		}
	}
	switch adjustmentType {
	case TypeMissingEntry:
		if entryTime == nil {
			return adjustmenterrors.ErrMissingTimes
		}
	case TypeMissingExit:
		if exitTime == nil {
			return adjustmenterrors.ErrMissingTimes
		}
	case TypeBoth:
		if entryTime == nil || exitTime == nil {
			return adjustmenterrors.ErrMissingTimes
		}
	}
	return nil
}

func (s *service) GetMine(ctx context.Context, userID string) ([]AdjustmentResponse, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetPending(ctx context.Context) ([]AdjustmentResponse, error) {
	rows, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Review(ctx context.Context, id string, managerID uuid.UUID, managerRole string, req ReviewAdjustmentRequest) (AdjustmentResponse, error) {
	if !user.AtLeastManager(managerRole) {
		return AdjustmentResponse{}, adjustmenterrors.ErrReviewForbidden
	}

	adj, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdjustmentResponse{}, adjustmenterrors.ErrAdjustmentNotFound
		}
		return AdjustmentResponse{}, err
	}
	if adj.Status != StatusPending {
		return AdjustmentResponse{}, adjustmenterrors.ErrAlreadyReviewed
	}

	if err := s.gate.Guard(ctx, adj.TargetDate); err != nil {
		return AdjustmentResponse{}, err
	}

	adj.ManagerID = &managerID
	if req.Comment != "" {
		adj.ManagerComment = &req.Comment
	}

	action := "REJECT_ADJUSTMENT"
	if req.Approve {
		adj.Status = StatusApproved
		action = "APPROVE_ADJUSTMENT"
	} else {
		adj.Status = StatusRejected
	}

	// Status flip and synthetic records commit or roll back together: a
	// failed status update must never leave approved records behind.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Approve {
			if err := s.materializeRecords(ctx, s.records.WithTx(tx), adj, managerID); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).Update(ctx, adj)
	})
	if err != nil {
		return AdjustmentResponse{}, err
	}

	s.auditor.Log(ctx, managerID, action, "ADJUSTMENT_REQUEST", &adj.ID, req.Comment)
	return mapToResponse(*adj), nil
}

// materializeRecords turns an approved missing-punch request into
// synthetic TimeRecords at the requested wall-clock times.
func (s *service) materializeRecords(ctx context.Context, records timerecord.Repository, adj *AdjustmentRequest, managerID uuid.UUID) error {
	reason := "adjustment " + adj.ID.String()
	justification := "ADJUSTMENT_APPROVAL"

	create := func(recordType string, wallClock string) error {
		t, err := time.Parse("15:04", wallClock)
		if err != nil {
			return adjustmenterrors.ErrInvalidTime
		}
		record := &timerecord.TimeRecord{
			ID:         uuid.New(),
			UserID:     adj.UserID,
			RecordType: recordType,
			RecordDatetime: time.Date(
				adj.TargetDate.Year(), adj.TargetDate.Month(), adj.TargetDate.Day(),
				t.Hour(), t.Minute(), 0, 0, s.loc,
			),
			IsManual:          true,
			IsTimeVerified:    false,
			EditedBy:          &managerID,
			EditJustification: &justification,
			EditReason:        &reason,
		}
		return records.Create(ctx, record)
	}

	switch adj.AdjustmentType {
	case TypeMissingEntry:
		return create(timerecord.TypeEntry, *adj.EntryTime)
	case TypeMissingExit:
		return create(timerecord.TypeExit, *adj.ExitTime)
	case TypeBoth:
		if err := create(timerecord.TypeEntry, *adj.EntryTime); err != nil {
			return err
		}
		return create(timerecord.TypeExit, *adj.ExitTime)
	}
	return nil
}

func (s *service) ApprovedForRange(ctx context.Context, userID string, start, end time.Time) ([]AdjustmentRequest, error) {
	return s.repo.FindApprovedByUserAndRange(ctx, userID, start, end)
}
