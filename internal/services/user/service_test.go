package user

import (
	"context"
	"testing"

	"ledgerpay/internal/logging"
	"ledgerpay/internal/models"
	"ledgerpay/internal/repositories"
	"ledgerpay/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uint, hashedPassword string) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, userID uint, status string) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) IncrementTokenVersion(_ context.Context, userID uint) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.TokenVersion++
	return nil
}

func newTestService(t *testing.T) (Service, *fakeUserRepo, *models.User) {
	t.Helper()
	repo := newFakeUserRepo()
	user := &models.User{
		Email:        "alice@example.com",
		Password:     "hashed",
		FirstName:    "Alice",
		LastName:     "Smith",
		Balance:      5000,
		Currency:     "USD",
		Role:         "user",
		Status:       models.UserStatusActive,
		TokenVersion: 1,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return NewService(repo, logging.Discard()), repo, user
}

func TestGetProfile_StripsCredentials(t *testing.T) {
	svc, _, user := newTestService(t)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, int64(5000), profile.Balance)
	assert.Equal(t, "USD", profile.Currency)
}

func TestUpdateProfile_NameFields(t *testing.T) {
	svc, repo, user := newTestService(t)

	newFirst, newLast := "Alicia", "Jones"
	profile, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		FirstName: &newFirst,
		LastName:  &newLast,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", profile.FirstName)
	assert.Equal(t, "Jones", profile.LastName)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	// Everything outside the writable surface is untouched.
	assert.Equal(t, "hashed", stored.Password)
	assert.Equal(t, int64(5000), stored.Balance)
	assert.Equal(t, 1, stored.TokenVersion)
}

func TestUpdateProfile_PasswordChangeBumpsTokenVersion(t *testing.T) {
	svc, repo, user := newTestService(t)

	newPassword := "N3wSecretPass"
	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{Password: &newPassword})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NoError(t, utils.CheckPassword(stored.Password, newPassword))
	assert.Equal(t, 2, stored.TokenVersion)
}

func TestUpdateProfile_RejectsWeakPassword(t *testing.T) {
	svc, _, user := newTestService(t)

	weak := "weak"
	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{Password: &weak})
	assert.Error(t, err)
}

func TestUpdateProfile_NothingToUpdate(t *testing.T) {
	svc, _, user := newTestService(t)

	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}
