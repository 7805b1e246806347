package models

import (
	"strings"
	"time"

	"github.com/vkazakov/adboard-backend/internal/apperr"
)

type Ad struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	ImagePath   string    `json:"image_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Ad) Validate() error {
	var errs apperr.Fields
	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, apperr.Field{Name: "title", Msg: "required"})
	}
	if strings.TrimSpace(a.Description) == "" {
		errs = append(errs, apperr.Field{Name: "description", Msg: "required"})
	}
	if a.Price < 0 {
		errs = append(errs, apperr.Field{Name: "price", Msg: "must be >= 0"})
	}
	if len(errs) > 0 {
		return errs.Invalid()
	}
	return nil
}

// FullAd is the detail view: the ad plus denormalized author display fields.
type FullAd struct {
	Ad
	AuthorFirstName string `json:"author_first_name"`
	AuthorLastName  string `json:"author_last_name"`
	AuthorPhone     string `json:"author_phone"`
	AuthorEmail     string `json:"author_email"`
}
