package auth

import (
	"context"
	"sync"
	"testing"

	"ledgerpay/internal/logging"
	"ledgerpay/internal/models"
	"ledgerpay/internal/repositories"
	"ledgerpay/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uint]*models.User
	byEmail map[string]uint
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uint]*models.User),
		byEmail: make(map[string]uint),
		nextID:  1,
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return repositories.ErrDuplicateEmail
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *r.users[id]
	return &copied, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uint, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, userID uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) IncrementTokenVersion(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.TokenVersion++
	return nil
}

func newTestService(t *testing.T) (Service, *fakeUserRepo) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	repo := newFakeUserRepo()
	return NewService(repo, logging.Discard()), repo
}

func register(t *testing.T, svc Service) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "alice@example.com",
		Password:  "Sup3rSecret",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo := newTestService(t)
	user := register(t, svc)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", stored.Password)
	assert.NoError(t, utils.CheckPassword(stored.Password, "Sup3rSecret"))
	assert.Equal(t, models.UserStatusActive, stored.Status)
	assert.Equal(t, int64(0), stored.Balance)
}

func TestRegister_EnforcesPasswordPolicy(t *testing.T) {
	svc, _ := newTestService(t)

	for _, password := range []string{"short1A", "nouppercase1", "NOLOWERCASE1", "NoDigitsHere"} {
		_, err := svc.Register(context.Background(), RegisterRequest{
			Email:     "alice@example.com",
			Password:  password,
			FirstName: "Alice",
			LastName:  "Smith",
		})
		assert.Error(t, err, "password %q should be rejected", password)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "alice@example.com",
		Password:  "An0therSecret",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	svc, _ := newTestService(t)
	registered := register(t, svc)

	user, access, refresh, err := svc.Login(context.Background(), "alice@example.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := utils.ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.TokenVersion, claims.TokenVersion)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	_, _, _, err := svc.Login(context.Background(), "alice@example.com", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RejectsNonActiveAccount(t *testing.T) {
	svc, repo := newTestService(t)
	user := register(t, svc)
	require.NoError(t, repo.UpdateStatus(context.Background(), user.ID, models.UserStatusSuspended))

	_, _, _, err := svc.Login(context.Background(), "alice@example.com", "Sup3rSecret")
	assert.ErrorIs(t, err, ErrAccountNotActive)
}

func TestLogout_InvalidatesRefreshTokens(t *testing.T) {
	svc, _ := newTestService(t)
	user := register(t, svc)

	_, _, refresh, err := svc.Login(context.Background(), "alice@example.com", "Sup3rSecret")
	require.NoError(t, err)

	_, _, err = svc.RefreshTokens(context.Background(), refresh)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID))

	_, _, err = svc.RefreshTokens(context.Background(), refresh)
	assert.Error(t, err)
}
