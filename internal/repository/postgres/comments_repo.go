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

type commentsRepo struct{ pool *pgxpool.Pool }

func NewComments(pool *pgxpool.Pool) repository.Comments {
	return &commentsRepo{pool: pool}
}

func (r *commentsRepo) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments(ad_id, user_id, text) VALUES($1,$2,$3)
		 RETURNING id, created_at`,
		c.AdID, c.UserID, c.Text,
	).Scan(&c.ID, &c.CreatedAt)
	return c, err
}

func (r *commentsRepo) GetByID(ctx context.Context, id int64) (models.Comment, error) {
	var c models.Comment
	err := r.pool.QueryRow(ctx,
		`SELECT id, ad_id, user_id, text, created_at FROM comments WHERE id=$1`, id,
	).Scan(&c.ID, &c.AdID, &c.UserID, &c.Text, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Comment{}, fmt.Errorf("%w: comment %d", apperr.ErrNotFound, id)
	}
	return c, err
}

func (r *commentsRepo) ListByAd(ctx context.Context, adID int64) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.ad_id, c.user_id, c.text, c.created_at, u.first_name, u.last_name
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.ad_id=$1 ORDER BY c.created_at`, adID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.AdID, &c.UserID, &c.Text, &c.CreatedAt,
			&c.AuthorFirstName, &c.AuthorLastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *commentsRepo) Update(ctx context.Context, id int64, text string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE comments SET text=$2 WHERE id=$1`, id, text)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: comment %d", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *commentsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: comment %d", apperr.ErrNotFound, id)
	}
	return nil
}
