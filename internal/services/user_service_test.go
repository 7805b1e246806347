package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/authz"
	"github.com/vkazakov/adboard-backend/internal/models"
	"github.com/vkazakov/adboard-backend/internal/storage"
)

func newUserService(t *testing.T) (*UserService, *fakeUsers) {
	t.Helper()
	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)
	users := newFakeUsers()
	return NewUserService(users, images), users
}

func register(t *testing.T, s *UserService, username string) models.User {
	t.Helper()
	u, err := s.Register(context.Background(), RegisterInput{
		Username:  username,
		Password:  "hunter2hunter2",
		FirstName: "Ivan",
		LastName:  "Petrov",
		Phone:     "+7 900 000-00-00",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	s, _ := newUserService(t)
	u := register(t, s, "ivan@mail.com")
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash, "password must be stored hashed")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s, repo := newUserService(t)
	first := register(t, s, "ivan@mail.com")

	_, err := s.Register(context.Background(), RegisterInput{
		Username:  "ivan@mail.com",
		Password:  "differentpass",
		FirstName: "Other",
		LastName:  "Guy",
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// First record untouched.
	got, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan", got.FirstName)
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newUserService(t)
	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"not an email", RegisterInput{Username: "ivan", Password: "longenough", FirstName: "A", LastName: "B"}},
		{"short password", RegisterInput{Username: "a@b.com", Password: "short", FirstName: "A", LastName: "B"}},
		{"missing first name", RegisterInput{Username: "a@b.com", Password: "longenough", LastName: "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.in)
			assert.True(t, errors.Is(err, apperr.ErrInvalid))
		})
	}
}

func TestVerifyCredentials(t *testing.T) {
	s, _ := newUserService(t)
	register(t, s, "ivan@mail.com")

	u, err := s.VerifyCredentials(context.Background(), "ivan@mail.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ivan@mail.com", u.Username)

	_, err = s.VerifyCredentials(context.Background(), "ivan@mail.com", "wrong")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	// Absent user reads the same as a bad password.
	_, err = s.VerifyCredentials(context.Background(), "nobody@mail.com", "hunter2hunter2")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestUpdateProfile(t *testing.T) {
	s, _ := newUserService(t)
	u := register(t, s, "ivan@mail.com")
	p := authz.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}

	got, err := s.UpdateProfile(context.Background(), p, ProfileInput{
		FirstName: "Ivan", LastName: "Sidorov", Phone: "+7 911 111-11-11",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sidorov", got.LastName)
}

func TestSetPassword(t *testing.T) {
	s, _ := newUserService(t)
	u := register(t, s, "ivan@mail.com")
	p := authz.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}

	err := s.SetPassword(context.Background(), p, "wrong-current", "newpassword1")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	require.NoError(t, s.SetPassword(context.Background(), p, "hunter2hunter2", "newpassword1"))

	_, err = s.VerifyCredentials(context.Background(), "ivan@mail.com", "newpassword1")
	assert.NoError(t, err)
}

func TestUpdateAvatar(t *testing.T) {
	s, repo := newUserService(t)
	u := register(t, s, "ivan@mail.com")
	p := authz.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}

	path, err := s.UpdateAvatar(context.Background(), p, "face.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "users/"))

	got, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AvatarPath)
	assert.Equal(t, path, *got.AvatarPath)
}
