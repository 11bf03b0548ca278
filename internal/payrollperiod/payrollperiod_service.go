package payrollperiod

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/audit"
	payrollperioderrors "github.com/viniciusmecosta/spe-api/internal/payrollperiod/errors"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

//go:generate mockgen -source=payrollperiod_service.go -destination=mock/payrollperiod_service_mock.go -package=mock
type Service interface {
	Close(ctx context.Context, month, year int, actorID uuid.UUID, actorRole string) (PeriodResponse, error)
	Reopen(ctx context.Context, month, year int, actorID uuid.UUID, actorRole string) error
	// Guard fails with PERIOD_CLOSED when the target date falls in a closed
	// period. Every mutating path on records and adjustments calls it before
	// touching the store.
	Guard(ctx context.Context, targetDate time.Time) error
	ListClosed(ctx context.Context) ([]PeriodResponse, error)
}

type service struct {
	repo    Repository
	auditor audit.Service
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(repo Repository, auditor audit.Service, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    repo,
		auditor: auditor,
		now:     now,
		logger:  zap.L().Named("payrollperiod.service"),
	}
}

func (s *service) Close(ctx context.Context, month, year int, actorID uuid.UUID, actorRole string) (PeriodResponse, error) {
	if month < 1 || month > 12 || year < 1 {
		return PeriodResponse{}, payrollperioderrors.ErrInvalidPeriod
	}
	if !user.AtLeastManager(actorRole) {
		return PeriodResponse{}, payrollperioderrors.ErrCloseForbidden
	}

	// The current and future months can never be closed.
	now := s.now()
	if year > now.Year() || (year == now.Year() && month >= int(now.Month())) {
		return PeriodResponse{}, payrollperioderrors.ErrPeriodNotPast
	}

	if _, err := s.repo.FindByPeriod(ctx, month, year); err == nil {
		return PeriodResponse{}, payrollperioderrors.ErrAlreadyClosed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PeriodResponse{}, err
	}

	closure := &PayrollClosure{
		ID:       uuid.New(),
		Month:    month,
		Year:     year,
		ClosedBy: actorID,
		ClosedAt: now,
	}
	if err := s.repo.Create(ctx, closure); err != nil {
		return PeriodResponse{}, err
	}

	s.logger.Info("payroll period closed",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.String("closed_by", actorID.String()),
	)
	s.auditor.Log(ctx, actorID, "CLOSE_PAYROLL_PERIOD", "PAYROLL_CLOSURE", &closure.ID,
		closure.ClosedAt.Format(time.RFC3339))

	return mapToResponse(*closure), nil
}

func (s *service) Reopen(ctx context.Context, month, year int, actorID uuid.UUID, actorRole string) error {
	if month < 1 || month > 12 || year < 1 {
		return payrollperioderrors.ErrInvalidPeriod
	}
	if actorRole != user.RoleMaintainer {
		return payrollperioderrors.ErrReopenForbidden
	}

	closure, err := s.repo.FindByPeriod(ctx, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollperioderrors.ErrNotClosed
		}
		return err
	}

	if err := s.repo.DeleteByPeriod(ctx, month, year); err != nil {
		return err
	}

	s.logger.Info("payroll period reopened",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.String("reopened_by", actorID.String()),
	)
	s.auditor.Log(ctx, actorID, "REOPEN_PAYROLL_PERIOD", "PAYROLL_CLOSURE", &closure.ID, "")

	return nil
}

func (s *service) Guard(ctx context.Context, targetDate time.Time) error {
	month := int(targetDate.Month())
	year := targetDate.Year()

	_, err := s.repo.FindByPeriod(ctx, month, year)
	if err == nil {
		return payrollperioderrors.NewPeriodClosed(month, year)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *service) ListClosed(ctx context.Context) ([]PeriodResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]PeriodResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func mapToResponse(c PayrollClosure) PeriodResponse {
	return PeriodResponse{
		Month:    c.Month,
		Year:     c.Year,
		IsClosed: true,
		ClosedBy: c.ClosedBy.String(),
		ClosedAt: c.ClosedAt.Format(time.RFC3339),
	}
}
