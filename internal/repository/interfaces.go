package repository

import (
	"context"

	"github.com/vkazakov/adboard-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	// GetByUsername returns (zero, false, nil) when the username is absent.
	GetByUsername(ctx context.Context, username string) (models.User, bool, error)
	Update(ctx context.Context, u models.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateAvatar(ctx context.Context, id int64, path string) error
}

type Ads interface {
	Create(ctx context.Context, a models.Ad) (models.Ad, error)
	GetByID(ctx context.Context, id int64) (models.Ad, error)
	GetFull(ctx context.Context, id int64) (models.FullAd, error)
	List(ctx context.Context) ([]models.Ad, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Ad, error)
	Update(ctx context.Context, a models.Ad) error
	UpdateImage(ctx context.Context, id int64, path string) error
	Delete(ctx context.Context, id int64) error
}

type Comments interface {
	Create(ctx context.Context, c models.Comment) (models.Comment, error)
	GetByID(ctx context.Context, id int64) (models.Comment, error)
	ListByAd(ctx context.Context, adID int64) ([]models.Comment, error)
	Update(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}
