package payrollperiod

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/audit"
	payrollperioderrors "github.com/viniciusmecosta/spe-api/internal/payrollperiod/errors"
	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

type periodKey struct {
	month, year int
}

type fakeRepo struct {
	closed map[periodKey]*PayrollClosure
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{closed: make(map[periodKey]*PayrollClosure)}
}

func (f *fakeRepo) Create(ctx context.Context, closure *PayrollClosure) error {
	f.closed[periodKey{closure.Month, closure.Year}] = closure
	return nil
}

func (f *fakeRepo) FindByPeriod(ctx context.Context, month, year int) (*PayrollClosure, error) {
	if c, ok := f.closed[periodKey{month, year}]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) DeleteByPeriod(ctx context.Context, month, year int) error {
	delete(f.closed, periodKey{month, year})
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]PayrollClosure, error) {
	out := make([]PayrollClosure, 0, len(f.closed))
	for _, c := range f.closed {
		out = append(out, *c)
	}
	return out, nil
}

type fakeAuditor struct {
	actions []string
}

func (f *fakeAuditor) Log(ctx context.Context, userID uuid.UUID, action, entity string, entityID *uuid.UUID, details string) {
	f.actions = append(f.actions, action)
}

func (f *fakeAuditor) ListByEntity(ctx context.Context, entity string, limit int) ([]audit.AuditLog, error) {
	return nil, nil
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
}

func TestClose_PastMonthSucceeds(t *testing.T) {
	repo := newFakeRepo()
	auditor := &fakeAuditor{}
	svc := NewService(repo, auditor, fixedNow)
	manager := uuid.New()

	resp, err := svc.Close(context.Background(), 2, 2025, manager, user.RoleManager)

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Month)
	assert.True(t, resp.IsClosed)
	assert.Contains(t, auditor.actions, "CLOSE_PAYROLL_PERIOD")
}

func TestClose_CurrentMonthRejected(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeAuditor{}, fixedNow)

	_, err := svc.Close(context.Background(), 3, 2025, uuid.New(), user.RoleManager)

	assert.ErrorIs(t, err, payrollperioderrors.ErrPeriodNotPast)
}

func TestClose_EmployeeForbidden(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeAuditor{}, fixedNow)

	_, err := svc.Close(context.Background(), 2, 2025, uuid.New(), user.RoleEmployee)

	assert.ErrorIs(t, err, payrollperioderrors.ErrCloseForbidden)
}

func TestClose_AlreadyClosedConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeAuditor{}, fixedNow)

	_, err := svc.Close(context.Background(), 2, 2025, uuid.New(), user.RoleManager)
	assert.NoError(t, err)

	_, err = svc.Close(context.Background(), 2, 2025, uuid.New(), user.RoleManager)
	assert.ErrorIs(t, err, payrollperioderrors.ErrAlreadyClosed)
}

func TestReopen_RequiresMaintainer(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeAuditor{}, fixedNow)
	_, err := svc.Close(context.Background(), 2, 2025, uuid.New(), user.RoleManager)
	assert.NoError(t, err)

	err = svc.Reopen(context.Background(), 2, 2025, uuid.New(), user.RoleManager)
	assert.ErrorIs(t, err, payrollperioderrors.ErrReopenForbidden)

	err = svc.Reopen(context.Background(), 2, 2025, uuid.New(), user.RoleMaintainer)
	assert.NoError(t, err)
	assert.Empty(t, repo.closed)
}

func TestReopen_NotClosed(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeAuditor{}, fixedNow)

	err := svc.Reopen(context.Background(), 1, 2025, uuid.New(), user.RoleMaintainer)

	assert.ErrorIs(t, err, payrollperioderrors.ErrNotClosed)
}

func TestGuard_BlocksDatesInsideClosedPeriod(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeAuditor{}, fixedNow)
	_, err := svc.Close(context.Background(), 2, 2025, uuid.New(), user.RoleManager)
	assert.NoError(t, err)

	err = svc.Guard(context.Background(), time.Date(2025, time.February, 15, 8, 0, 0, 0, time.UTC))
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)

	assert.NoError(t, svc.Guard(context.Background(), time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)))
}
