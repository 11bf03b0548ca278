package user

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	usererrors "github.com/viniciusmecosta/spe-api/internal/user/errors"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
	created []*User
	updated []*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (f *fakeRepo) add(u *User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	f.created = append(f.created, u)
	f.add(u)
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) FindActiveEmployees(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range f.byID {
		if u.IsActive && u.Role == RoleEmployee {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	f.updated = append(f.updated, u)
	f.add(u)
	return nil
}

const testSecret = "test-secret"

func seededUser(repo *fakeRepo, password string, active bool) *User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &User{
		ID:           uuid.New(),
		Name:         "Joana Ribeiro",
		Email:        "joana@example.com",
		PasswordHash: string(hash),
		Role:         RoleManager,
		IsActive:     active,
	}
	repo.add(u)
	return u
}

func TestLogin_IssuesTokenWithRoleClaim(t *testing.T) {
	repo := newFakeRepo()
	u := seededUser(repo, "s3nh4forte", true)
	svc := NewService(repo, testSecret)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "joana@example.com", Password: "s3nh4forte"})

	assert.NoError(t, err)
	assert.Equal(t, u.ID.String(), resp.User.ID)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["sub"])
	assert.Equal(t, RoleManager, claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeRepo()
	seededUser(repo, "s3nh4forte", true)
	svc := NewService(repo, testSecret)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "joana@example.com", Password: "errada"})

	assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc := NewService(newFakeRepo(), testSecret)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "x"})

	assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newFakeRepo()
	seededUser(repo, "s3nh4forte", false)
	svc := NewService(repo, testSecret)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "joana@example.com", Password: "s3nh4forte"})

	assert.ErrorIs(t, err, usererrors.ErrUserInactive)
}

func TestCreate_DefaultsToEmployeeAndHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testSecret)

	resp, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Pedro Lima",
		Email:    "pedro@example.com",
		Password: "outrasenha1",
	})

	assert.NoError(t, err)
	assert.Equal(t, RoleEmployee, resp.Role)
	assert.True(t, resp.IsActive)
	if assert.Len(t, repo.created, 1) {
		stored := repo.created[0]
		assert.NotEqual(t, "outrasenha1", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("outrasenha1")))
	}
}

func TestCreate_EmailTaken(t *testing.T) {
	repo := newFakeRepo()
	seededUser(repo, "s3nh4forte", true)
	svc := NewService(repo, testSecret)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Outra Joana",
		Email:    "joana@example.com",
		Password: "outrasenha1",
	})

	assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
}

func TestUpdate_RejectsUnknownRole(t *testing.T) {
	repo := newFakeRepo()
	u := seededUser(repo, "s3nh4forte", true)
	svc := NewService(repo, testSecret)

	bad := "SUPERVISOR"
	_, err := svc.Update(context.Background(), u.ID.String(), UpdateUserRequest{Role: &bad})

	assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	assert.Empty(t, repo.updated)
}

func TestUpdate_DeactivatesUser(t *testing.T) {
	repo := newFakeRepo()
	u := seededUser(repo, "s3nh4forte", true)
	svc := NewService(repo, testSecret)

	inactive := false
	resp, err := svc.Update(context.Background(), u.ID.String(), UpdateUserRequest{IsActive: &inactive})

	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
}
