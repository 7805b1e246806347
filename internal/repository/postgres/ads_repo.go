package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/models"
	"github.com/vkazakov/adboard-backend/internal/repository"
)

type adsRepo struct{ pool *pgxpool.Pool }

func NewAds(pool *pgxpool.Pool) repository.Ads {
	return &adsRepo{pool: pool}
}

const adCols = `id, user_id, title, price, description, image_path, created_at, updated_at`

func scanAd(row pgx.Row) (models.Ad, error) {
	var a models.Ad
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Price, &a.Description,
		&a.ImagePath, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *adsRepo) Create(ctx context.Context, a models.Ad) (models.Ad, error) {
	return scanAd(r.pool.QueryRow(ctx,
		`INSERT INTO ads(user_id, title, price, description, image_path)
		 VALUES($1,$2,$3,$4,$5) RETURNING `+adCols,
		a.UserID, a.Title, a.Price, a.Description, a.ImagePath,
	))
}

func (r *adsRepo) GetByID(ctx context.Context, id int64) (models.Ad, error) {
	a, err := scanAd(r.pool.QueryRow(ctx,
		`SELECT `+adCols+` FROM ads WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Ad{}, fmt.Errorf("%w: ad %d", apperr.ErrNotFound, id)
	}
	return a, err
}

func (r *adsRepo) GetFull(ctx context.Context, id int64) (models.FullAd, error) {
	var f models.FullAd
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.user_id, a.title, a.price, a.description, a.image_path,
		        a.created_at, a.updated_at,
		        u.first_name, u.last_name, u.phone, u.username
		 FROM ads a JOIN users u ON u.id = a.user_id
		 WHERE a.id=$1`, id,
	).Scan(&f.ID, &f.UserID, &f.Title, &f.Price, &f.Description, &f.ImagePath,
		&f.CreatedAt, &f.UpdatedAt,
		&f.AuthorFirstName, &f.AuthorLastName, &f.AuthorPhone, &f.AuthorEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.FullAd{}, fmt.Errorf("%w: ad %d", apperr.ErrNotFound, id)
	}
	return f, err
}

func (r *adsRepo) List(ctx context.Context) ([]models.Ad, error) {
	return r.list(ctx, `SELECT `+adCols+` FROM ads ORDER BY created_at DESC`)
}

func (r *adsRepo) ListByUser(ctx context.Context, userID int64) ([]models.Ad, error) {
	return r.list(ctx,
		`SELECT `+adCols+` FROM ads WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *adsRepo) list(ctx context.Context, sql string, args ...any) ([]models.Ad, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ad
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *adsRepo) Update(ctx context.Context, a models.Ad) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ads SET title=$2, price=$3, description=$4, updated_at=now() WHERE id=$1`,
		a.ID, a.Title, a.Price, a.Description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ad %d", apperr.ErrNotFound, a.ID)
	}
	return nil
}

func (r *adsRepo) UpdateImage(ctx context.Context, id int64, path string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ads SET image_path=$2, updated_at=now() WHERE id=$1`, id, path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ad %d", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *adsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ad %d", apperr.ErrNotFound, id)
	}
	return nil
}
