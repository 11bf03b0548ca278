package biometric

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/events"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

type fakeRepo struct {
	byID      map[string]*UserBiometric
	bySensor  map[int]*UserBiometric
	assigned  map[string]*int
	templates []UserBiometric
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:     make(map[string]*UserBiometric),
		bySensor: make(map[int]*UserBiometric),
		assigned: make(map[string]*int),
	}
}

func (f *fakeRepo) add(b *UserBiometric) {
	f.byID[b.ID.String()] = b
	if b.SensorIndex != nil {
		f.bySensor[*b.SensorIndex] = b
	}
	f.templates = append(f.templates, *b)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, b *UserBiometric) error {
	f.add(b)
	return nil
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*UserBiometric, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) FindByUser(ctx context.Context, userID string) ([]UserBiometric, error) {
	return nil, nil
}
func (f *fakeRepo) FindBySensorIndex(ctx context.Context, sensorIndex int) (*UserBiometric, error) {
	if b, ok := f.bySensor[sensorIndex]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) FindAllEnrolled(ctx context.Context) ([]UserBiometric, error) {
	return f.templates, nil
}
func (f *fakeRepo) UpdateSensorIndex(ctx context.Context, id string, sensorIndex *int) error {
	f.assigned[id] = sensorIndex
	return nil
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeUserRepo struct{}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return &user.User{}, nil
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error)             { return nil, nil }
func (f *fakeUserRepo) FindActiveEmployees(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error               { return nil }

type fakePublisher struct {
	syncData []events.BiometricSyncData
	syncEnd  []events.SyncEnd
}

func (f *fakePublisher) PublishFeedback(ctx context.Context, feedback events.FeedbackMessage) error {
	return nil
}
func (f *fakePublisher) PublishSyncData(ctx context.Context, data events.BiometricSyncData) error {
	f.syncData = append(f.syncData, data)
	return nil
}
func (f *fakePublisher) PublishSyncEnd(ctx context.Context, end events.SyncEnd) error {
	f.syncEnd = append(f.syncEnd, end)
	return nil
}
func (f *fakePublisher) PublishTimeResponse(ctx context.Context, resp events.TimeResponse) error {
	return nil
}

func intptr(i int) *int { return &i }

func TestService_SyncAll_PushesEveryTemplateThenEnd(t *testing.T) {
	repo := newFakeRepo()
	repo.add(&UserBiometric{ID: uuid.New(), UserID: uuid.New(), TemplateData: "t1"})
	repo.add(&UserBiometric{ID: uuid.New(), UserID: uuid.New(), TemplateData: "t2"})
	pub := &fakePublisher{}

	svc := NewService(repo, &fakeUserRepo{}, pub)
	resp, err := svc.SyncAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Templates)
	assert.Len(t, pub.syncData, 2)
	assert.Equal(t, []events.SyncEnd{{Total: 2}}, pub.syncEnd)
}

func TestService_ProcessSyncAck_AssignsSlot(t *testing.T) {
	repo := newFakeRepo()
	target := &UserBiometric{ID: uuid.New(), UserID: uuid.New(), TemplateData: "t1"}
	repo.add(target)

	svc := NewService(repo, &fakeUserRepo{}, &fakePublisher{})
	err := svc.ProcessSyncAck(context.Background(), events.BiometricSyncAck{
		BiometricID: target.ID.String(),
		SensorIndex: 4,
		Success:     true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, *repo.assigned[target.ID.String()])
}

func TestService_ProcessSyncAck_DisplacesCollision(t *testing.T) {
	repo := newFakeRepo()
	holder := &UserBiometric{ID: uuid.New(), UserID: uuid.New(), SensorIndex: intptr(4), TemplateData: "old"}
	target := &UserBiometric{ID: uuid.New(), UserID: uuid.New(), TemplateData: "new"}
	repo.add(holder)
	repo.add(target)

	svc := NewService(repo, &fakeUserRepo{}, &fakePublisher{})
	err := svc.ProcessSyncAck(context.Background(), events.BiometricSyncAck{
		BiometricID: target.ID.String(),
		SensorIndex: 4,
		Success:     true,
	})
	assert.NoError(t, err)
	assert.Equal(t, -5, *repo.assigned[holder.ID.String()], "displaced row gets a negative placeholder")
	assert.Equal(t, 4, *repo.assigned[target.ID.String()])
}

func TestService_ProcessSyncAck_FailureIsIgnored(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeUserRepo{}, &fakePublisher{})

	err := svc.ProcessSyncAck(context.Background(), events.BiometricSyncAck{
		BiometricID: uuid.New().String(),
		Success:     false,
		Error:       "flash full",
	})
	assert.NoError(t, err)
	assert.Empty(t, repo.assigned)
}

func TestService_SaveEnrolled_StoresTemplateWithSlot(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeUserRepo{}, &fakePublisher{})

	userID := uuid.New()
	err := svc.SaveEnrolled(context.Background(), events.EnrollResult{
		UserID:       userID.String(),
		SensorIndex:  9,
		Success:      true,
		TemplateData: "captured",
	})
	assert.NoError(t, err)
	assert.Len(t, repo.templates, 1)
	assert.Equal(t, 9, *repo.templates[0].SensorIndex)
	assert.Equal(t, userID, repo.templates[0].UserID)
}
