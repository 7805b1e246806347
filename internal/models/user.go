package models

import (
	"strings"
	"time"

	"github.com/vkazakov/adboard-backend/internal/apperr"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	AvatarPath   *string   `json:"avatar_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Username doubles as the login email.
func (u *User) Validate() error {
	var errs apperr.Fields
	if strings.TrimSpace(u.Username) == "" || !strings.Contains(u.Username, "@") {
		errs = append(errs, apperr.Field{Name: "username", Msg: "must be an email address"})
	}
	if strings.TrimSpace(u.FirstName) == "" {
		errs = append(errs, apperr.Field{Name: "first_name", Msg: "required"})
	}
	if strings.TrimSpace(u.LastName) == "" {
		errs = append(errs, apperr.Field{Name: "last_name", Msg: "required"})
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if len(errs) > 0 {
		return errs.Invalid()
	}
	return nil
}
