package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/models"
	"github.com/vkazakov/adboard-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, username, password_hash, first_name, last_name, phone, role, avatar_path, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.AvatarPath, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users(username, password_hash, first_name, last_name, phone, role)
		 VALUES($1,$2,$3,$4,$5,$6) RETURNING `+userCols,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return models.User{}, fmt.Errorf("%w: username %q taken", apperr.ErrConflict, u.Username)
		}
		return models.User{}, err
	}
	return created, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}
	return u, err
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, bool, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE username=$1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return u, true, nil
}

func (r *usersRepo) Update(ctx context.Context, u models.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET first_name=$2, last_name=$3, phone=$4, updated_at=now() WHERE id=$1`,
		u.ID, u.FirstName, u.LastName, u.Phone,
	)
	return err
}

func (r *usersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1`, id, hash)
	return err
}

func (r *usersRepo) UpdateAvatar(ctx context.Context, id int64, path string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET avatar_path=$2, updated_at=now() WHERE id=$1`, id, path)
	return err
}
