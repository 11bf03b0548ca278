package adjustment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	adjustmenterrors "github.com/viniciusmecosta/spe-api/internal/adjustment/errors"
	"github.com/viniciusmecosta/spe-api/internal/audit"
	"github.com/viniciusmecosta/spe-api/internal/payrollperiod"
	"github.com/viniciusmecosta/spe-api/internal/timerecord"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

type fakeAdjustmentRepo struct {
	byID      map[string]*AdjustmentRequest
	created   []AdjustmentRequest
	updated   []AdjustmentRequest
	updateErr error
	txSeen    []*gorm.DB
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{byID: make(map[string]*AdjustmentRequest)}
}

func (f *fakeAdjustmentRepo) WithTx(tx *gorm.DB) Repository {
	f.txSeen = append(f.txSeen, tx)
	return f
}
func (f *fakeAdjustmentRepo) Create(ctx context.Context, a *AdjustmentRequest) error {
	f.created = append(f.created, *a)
	f.byID[a.ID.String()] = a
	return nil
}
func (f *fakeAdjustmentRepo) FindByID(ctx context.Context, id string) (*AdjustmentRequest, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAdjustmentRepo) FindByUser(ctx context.Context, userID string) ([]AdjustmentRequest, error) {
	return nil, nil
}
func (f *fakeAdjustmentRepo) FindByStatus(ctx context.Context, status string) ([]AdjustmentRequest, error) {
	return nil, nil
}
func (f *fakeAdjustmentRepo) FindApprovedByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]AdjustmentRequest, error) {
	return nil, nil
}
func (f *fakeAdjustmentRepo) Update(ctx context.Context, a *AdjustmentRequest) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *a)
	return nil
}

type fakeRecordRepo struct {
	created []timerecord.TimeRecord
}

func (f *fakeRecordRepo) WithTx(tx *gorm.DB) timerecord.Repository { return f }
func (f *fakeRecordRepo) Create(ctx context.Context, record *timerecord.TimeRecord) error {
	f.created = append(f.created, *record)
	return nil
}
func (f *fakeRecordRepo) FindByID(ctx context.Context, id string) (*timerecord.TimeRecord, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRecordRepo) FindLastByUser(ctx context.Context, userID string) (*timerecord.TimeRecord, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRecordRepo) FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]timerecord.TimeRecord, error) {
	return nil, nil
}
func (f *fakeRecordRepo) FindByUsersAndRange(ctx context.Context, userIDs []string, start, end time.Time) ([]timerecord.TimeRecord, error) {
	return nil, nil
}
func (f *fakeRecordRepo) Update(ctx context.Context, record *timerecord.TimeRecord) error { return nil }
func (f *fakeRecordRepo) Delete(ctx context.Context, id string) error                     { return nil }
func (f *fakeRecordRepo) CreateManualAdjustment(ctx context.Context, adj *timerecord.ManualAdjustment) error {
	return nil
}
func (f *fakeRecordRepo) CreateAuthorization(ctx context.Context, auth *timerecord.ManualPunchAuthorization) error {
	return nil
}
func (f *fakeRecordRepo) DeleteAuthorizationsByUser(ctx context.Context, userID string) error {
	return nil
}
func (f *fakeRecordRepo) HasActiveAuthorization(ctx context.Context, userID string, at time.Time) (bool, error) {
	return false, nil
}

type gateStub struct {
	err error
}

func (g gateStub) Close(ctx context.Context, month, year int, actorID uuid.UUID, actorRole string) (payrollperiod.PeriodResponse, error) {
	return payrollperiod.PeriodResponse{}, nil
}
func (g gateStub) Reopen(ctx context.Context, month, year int, actorID uuid.UUID, actorRole string) error {
	return nil
}
func (g gateStub) Guard(ctx context.Context, targetDate time.Time) error { return g.err }
func (g gateStub) ListClosed(ctx context.Context) ([]payrollperiod.PeriodResponse, error) {
	return nil, nil
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

func strptr(s string) *string { return &s }

// newMockGorm wires gorm over a sqlmock connection so transaction
// begin/commit/rollback can be asserted without a database.
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

func TestService_Create_EmployeeCannotFileForOthers(t *testing.T) {
	gdb, _ := newMockGorm(t)
	svc := NewService(gdb, newFakeAdjustmentRepo(), &fakeRecordRepo{}, gateStub{}, &fakeAuditor{}, time.UTC)

	_, err := svc.Create(context.Background(), uuid.New(), user.RoleEmployee, CreateAdjustmentRequest{
		UserID:         uuid.New().String(),
		AdjustmentType: TypeWaiver,
		TargetDate:     "2025-03-05",
		Reason:         "medical leave",
	})
	assert.ErrorIs(t, err, adjustmenterrors.ErrNotOwner)
}

func TestService_Create_RequiresTimesForMissingPunchTypes(t *testing.T) {
	gdb, _ := newMockGorm(t)
	svc := NewService(gdb, newFakeAdjustmentRepo(), &fakeRecordRepo{}, gateStub{}, &fakeAuditor{}, time.UTC)
	actor := uuid.New()

	_, err := svc.Create(context.Background(), actor, user.RoleEmployee, CreateAdjustmentRequest{
		AdjustmentType: TypeMissingEntry,
		TargetDate:     "2025-03-05",
		Reason:         "forgot to punch in",
	})
	assert.ErrorIs(t, err, adjustmenterrors.ErrMissingTimes)

	_, err = svc.Create(context.Background(), actor, user.RoleEmployee, CreateAdjustmentRequest{
		AdjustmentType: TypeMissingEntry,
		TargetDate:     "2025-03-05",
		EntryTime:      strptr("8am"),
		Reason:         "forgot to punch in",
	})
	assert.ErrorIs(t, err, adjustmenterrors.ErrInvalidTime)
}

func TestService_Create_BlockedByClosedPeriod(t *testing.T) {
	gdb, _ := newMockGorm(t)
	repo := newFakeAdjustmentRepo()
	closed := assert.AnError
	svc := NewService(gdb, repo, &fakeRecordRepo{}, gateStub{err: closed}, &fakeAuditor{}, time.UTC)

	_, err := svc.Create(context.Background(), uuid.New(), user.RoleEmployee, CreateAdjustmentRequest{
		AdjustmentType: TypeWaiver,
		TargetDate:     "2024-03-05",
		Reason:         "late request",
	})
	assert.ErrorIs(t, err, closed)
	assert.Empty(t, repo.created)
}

func TestService_Review_ApproveMaterializesSyntheticRecords(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := newFakeAdjustmentRepo()
	records := &fakeRecordRepo{}
	auditor := &fakeAuditor{}
	svc := NewService(gdb, repo, records, gateStub{}, auditor, time.UTC)

	adj := &AdjustmentRequest{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		AdjustmentType: TypeBoth,
		TargetDate:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		EntryTime:      strptr("08:00"),
		ExitTime:       strptr("17:00"),
		Status:         StatusPending,
	}
	repo.byID[adj.ID.String()] = adj

	mock.ExpectBegin()
	mock.ExpectCommit()

	managerID := uuid.New()
	resp, err := svc.Review(context.Background(), adj.ID.String(), managerID, user.RoleManager, ReviewAdjustmentRequest{
		Approve: true,
		Comment: "confirmed with supervisor",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Len(t, records.created, 2)
	assert.Equal(t, timerecord.TypeEntry, records.created[0].RecordType)
	assert.Equal(t, timerecord.TypeExit, records.created[1].RecordType)
	assert.Equal(t, 8, records.created[0].RecordDatetime.Hour())
	assert.False(t, records.created[0].IsTimeVerified)
	assert.Contains(t, auditor.actions, "APPROVE_ADJUSTMENT")
	if assert.NotEmpty(t, repo.txSeen) {
		assert.NotNil(t, repo.txSeen[0], "status update must run on the transaction")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Review_FailedStatusUpdateRollsBack(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := newFakeAdjustmentRepo()
	repo.updateErr = assert.AnError
	records := &fakeRecordRepo{}
	auditor := &fakeAuditor{}
	svc := NewService(gdb, repo, records, gateStub{}, auditor, time.UTC)

	adj := &AdjustmentRequest{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		AdjustmentType: TypeMissingEntry,
		TargetDate:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		EntryTime:      strptr("08:00"),
		Status:         StatusPending,
	}
	repo.byID[adj.ID.String()] = adj

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Review(context.Background(), adj.ID.String(), uuid.New(), user.RoleManager, ReviewAdjustmentRequest{Approve: true})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, auditor.actions)
	assert.NoError(t, mock.ExpectationsWereMet(), "the synthetic records must be covered by the rolled-back transaction")
}

func TestService_Review_IsOneShot(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := newFakeAdjustmentRepo()
	svc := NewService(gdb, repo, &fakeRecordRepo{}, gateStub{}, &fakeAuditor{}, time.UTC)

	adj := &AdjustmentRequest{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		AdjustmentType: TypeWaiver,
		TargetDate:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:         StatusPending,
	}
	repo.byID[adj.ID.String()] = adj

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Review(context.Background(), adj.ID.String(), uuid.New(), user.RoleManager, ReviewAdjustmentRequest{Approve: false})
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, adj.Status)

	_, err = svc.Review(context.Background(), adj.ID.String(), uuid.New(), user.RoleManager, ReviewAdjustmentRequest{Approve: true})
	assert.ErrorIs(t, err, adjustmenterrors.ErrAlreadyReviewed)
}

func TestService_Review_RequiresManager(t *testing.T) {
	gdb, _ := newMockGorm(t)
	svc := NewService(gdb, newFakeAdjustmentRepo(), &fakeRecordRepo{}, gateStub{}, &fakeAuditor{}, time.UTC)

	_, err := svc.Review(context.Background(), uuid.New().String(), uuid.New(), user.RoleEmployee, ReviewAdjustmentRequest{Approve: true})
	assert.ErrorIs(t, err, adjustmenterrors.ErrReviewForbidden)
}
