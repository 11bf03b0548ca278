package punch

import (
	"context"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/biometric"
	puncherrors "github.com/viniciusmecosta/spe-api/internal/punch/errors"
	"github.com/viniciusmecosta/spe-api/internal/timerecord"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

type fakeBiometricRepo struct {
	findBySensorIndexFn func(ctx context.Context, sensorIndex int) (*biometric.UserBiometric, error)
}

func (f *fakeBiometricRepo) WithTx(tx *gorm.DB) biometric.Repository { return f }
func (f *fakeBiometricRepo) Create(ctx context.Context, b *biometric.UserBiometric) error {
	return nil
}
func (f *fakeBiometricRepo) FindByID(ctx context.Context, id string) (*biometric.UserBiometric, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBiometricRepo) FindByUser(ctx context.Context, userID string) ([]biometric.UserBiometric, error) {
	return nil, nil
}
func (f *fakeBiometricRepo) FindBySensorIndex(ctx context.Context, sensorIndex int) (*biometric.UserBiometric, error) {
	return f.findBySensorIndexFn(ctx, sensorIndex)
}
func (f *fakeBiometricRepo) FindAllEnrolled(ctx context.Context) ([]biometric.UserBiometric, error) {
	return nil, nil
}
func (f *fakeBiometricRepo) UpdateSensorIndex(ctx context.Context, id string, sensorIndex *int) error {
	return nil
}
func (f *fakeBiometricRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeUserRepo struct {
	findByIDFn func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error)             { return nil, nil }
func (f *fakeUserRepo) FindActiveEmployees(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error               { return nil }

type fakeRecordRepo struct {
	mu      sync.Mutex
	records []timerecord.TimeRecord
	lastErr error
}

func (f *fakeRecordRepo) WithTx(tx *gorm.DB) timerecord.Repository { return f }
func (f *fakeRecordRepo) Create(ctx context.Context, record *timerecord.TimeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}
func (f *fakeRecordRepo) FindByID(ctx context.Context, id string) (*timerecord.TimeRecord, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRecordRepo) FindLastByUser(ctx context.Context, userID string) (*timerecord.TimeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	if len(f.records) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	last := f.records[len(f.records)-1]
	return &last, nil
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

func testFixture(active bool) (*fakeBiometricRepo, *fakeUserRepo, *fakeRecordRepo, uuid.UUID) {
	userID := uuid.New()
	bioID := uuid.New()
	bios := &fakeBiometricRepo{
		findBySensorIndexFn: func(ctx context.Context, sensorIndex int) (*biometric.UserBiometric, error) {
			if sensorIndex == 7 {
				return &biometric.UserBiometric{ID: bioID, UserID: userID}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	users := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: userID, Name: "Maria Clara Souza", IsActive: active}, nil
		},
	}
	return bios, users, &fakeRecordRepo{}, userID
}

func TestService_Ingest_TogglesEntryExit(t *testing.T) {
	bios, users, records, userID := testFixture(true)
	svc := NewService(NewMemoryDeduper(), bios, users, records, time.UTC, nil)
	ctx := context.Background()

	first, err := svc.Ingest(ctx, "req-1", 7, 1741600800)
	assert.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, timerecord.TypeEntry, first.Record.RecordType)
	assert.Equal(t, "Ola, Maria", first.Message)
	assert.Equal(t, userID, first.Record.UserID)
	assert.False(t, first.Record.IsManual)

	second, err := svc.Ingest(ctx, "req-2", 7, 1741604400)
	assert.NoError(t, err)
	assert.Equal(t, timerecord.TypeExit, second.Record.RecordType)

	third, err := svc.Ingest(ctx, "req-3", 7, 1741608000)
	assert.NoError(t, err)
	assert.Equal(t, timerecord.TypeEntry, third.Record.RecordType)
}

func TestService_Ingest_DuplicateRequestID(t *testing.T) {
	bios, users, records, _ := testFixture(true)
	svc := NewService(NewMemoryDeduper(), bios, users, records, time.UTC, nil)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, "req-1", 7, 1741600800)
	assert.NoError(t, err)

	result, err := svc.Ingest(ctx, "req-1", 7, 1741600800)
	assert.ErrorIs(t, err, puncherrors.ErrDuplicateRequest)
	assert.Equal(t, "Duplicated request", result.Message)
	assert.Len(t, records.records, 1, "duplicate must leave exactly one persisted record")
}

func TestService_Ingest_UnknownBiometric(t *testing.T) {
	bios, users, records, _ := testFixture(true)
	svc := NewService(NewMemoryDeduper(), bios, users, records, time.UTC, nil)

	result, err := svc.Ingest(context.Background(), "req-1", 99, 1741600800)
	assert.ErrorIs(t, err, puncherrors.ErrUnknownBiometric)
	assert.Equal(t, "Biometria não cadastrada", result.Message)
	assert.Empty(t, records.records)
}

func TestService_Ingest_InactiveUser(t *testing.T) {
	bios, users, records, _ := testFixture(false)
	svc := NewService(NewMemoryDeduper(), bios, users, records, time.UTC, nil)

	result, err := svc.Ingest(context.Background(), "req-1", 7, 1741600800)
	assert.ErrorIs(t, err, puncherrors.ErrInactiveUser)
	assert.Equal(t, "Usuário inativo", result.Message)
	assert.Empty(t, records.records)
}

func TestService_Ingest_ConvertsDeviceTimestamp(t *testing.T) {
	loc, err := time.LoadLocation("America/Fortaleza")
	assert.NoError(t, err)

	bios, users, records, _ := testFixture(true)
	svc := NewService(NewMemoryDeduper(), bios, users, records, loc, nil)

	result, err := svc.Ingest(context.Background(), "req-1", 7, 1741600800)
	assert.NoError(t, err)
	assert.Equal(t, loc.String(), result.Record.RecordDatetime.Location().String())
	assert.Equal(t, int64(1741600800), result.Record.RecordDatetime.Unix())
}

func TestFeedbackFor_TruncatesAndSignals(t *testing.T) {
	record := &timerecord.TimeRecord{RecordType: timerecord.TypeExit}
	fb := FeedbackFor("req-1", Result{Success: true, Message: "Ola, Maximiliano Alberto", Record: record}, nil)
	assert.Equal(t, "Ola, Maximiliano", fb.Line1)
	assert.LessOrEqual(t, len(fb.Line1), 16)
	assert.Equal(t, "Saida", fb.Line2)
	assert.Equal(t, "green", fb.Actions.LedColor)

	fb = FeedbackFor("req-2", Result{}, assert.AnError)
	assert.Equal(t, "Erro Interno", fb.Line1)
	assert.Equal(t, "Contate Admin", fb.Line2)
	assert.Equal(t, "red", fb.Actions.LedColor)

	fb = FeedbackFor("req-3", Result{Message: puncherrors.ErrUnknownBiometric.Message}, puncherrors.ErrUnknownBiometric)
	assert.LessOrEqual(t, utf8.RuneCountInString(fb.Line1), 16)
	assert.True(t, utf8.ValidString(fb.Line1))
	assert.Equal(t, "red", fb.Actions.LedColor)
}
