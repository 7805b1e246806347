package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/vkazakov/adboard-backend/internal/repository"
)

type Repositories struct {
	Users    repo.Users
	Ads      repo.Ads
	Comments repo.Comments
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    &usersRepo{pool},
		Ads:      &adsRepo{pool},
		Comments: &commentsRepo{pool},
	}
}
