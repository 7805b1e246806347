package models

import (
	"strings"
	"time"

	"github.com/vkazakov/adboard-backend/internal/apperr"
)

type Comment struct {
	ID        int64     `json:"id"`
	AdID      int64     `json:"ad_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Author display name, populated by the join in list queries.
	AuthorFirstName string `json:"author_first_name,omitempty"`
	AuthorLastName  string `json:"author_last_name,omitempty"`
}

func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return apperr.Fields{{Name: "text", Msg: "required"}}.Invalid()
	}
	return nil
}
