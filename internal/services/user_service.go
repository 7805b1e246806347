package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/auth"
	"github.com/vkazakov/adboard-backend/internal/authz"
	"github.com/vkazakov/adboard-backend/internal/models"
	repo "github.com/vkazakov/adboard-backend/internal/repository"
	"github.com/vkazakov/adboard-backend/internal/storage"
)

type UserService struct {
	users  repo.Users
	images *storage.ImageStore
}

func NewUserService(users repo.Users, images *storage.ImageStore) *UserService {
	return &UserService{users: users, images: images}
}

type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	u := models.User{
		Username:  strings.TrimSpace(in.Username),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      models.RoleUser,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if len(in.Password) < 8 {
		return models.User{}, apperr.Fields{{Name: "password", Msg: "must be at least 8 characters"}}.Invalid()
	}
	// Uniqueness is enforced by the DB; this check just gives the common case
	// a clean conflict error without relying on the constraint.
	if _, ok, err := s.users.GetByUsername(ctx, u.Username); err != nil {
		return models.User{}, err
	} else if ok {
		return models.User{}, fmt.Errorf("%w: username %q taken", apperr.ErrConflict, u.Username)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash
	return s.users.Create(ctx, u)
}

// VerifyCredentials backs both /login and the Basic auth middleware.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (models.User, error) {
	u, ok, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if !ok || auth.VerifyPassword(password, u.PasswordHash) != nil {
		return models.User{}, apperr.ErrUnauthenticated
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

type ProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (s *UserService) UpdateProfile(ctx context.Context, p authz.Principal, in ProfileInput) (models.User, error) {
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return models.User{}, err
	}
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	u.Phone = strings.TrimSpace(in.Phone)
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	return s.users.GetByID(ctx, p.UserID)
}

func (s *UserService) SetPassword(ctx context.Context, p authz.Principal, current, next string) error {
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if auth.VerifyPassword(current, u.PasswordHash) != nil {
		return apperr.ErrForbidden
	}
	if len(next) < 8 {
		return apperr.Fields{{Name: "new_password", Msg: "must be at least 8 characters"}}.Invalid()
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, p.UserID, hash)
}

// UpdateAvatar stores the upload and points the caller's record at it. The
// previous file, if any, is removed best effort.
func (s *UserService) UpdateAvatar(ctx context.Context, p authz.Principal, filename string, r io.Reader) (string, error) {
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return "", err
	}
	path, err := s.images.Save("users", p.UserID, filename, r)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateAvatar(ctx, p.UserID, path); err != nil {
		return "", err
	}
	if u.AvatarPath != nil && *u.AvatarPath != "" {
		if err := s.images.Remove(*u.AvatarPath); err != nil {
			slog.Warn("remove old avatar", "path", *u.AvatarPath, "err", err)
		}
	}
	return path, nil
}
