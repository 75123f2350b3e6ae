package postgres

import (
	"context"
	"errors"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/models"
	"github.com/eventtracker/server/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, email, first_name, last_name, password_hash, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, apperr.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, email, first_name, last_name, password_hash, is_active) VALUES($1,$2,$3,$4,$5,$6)`,
		id, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsActive,
	)
	if err != nil {
		// The lower(email) unique index is the arbiter for concurrent
		// registrations of the same address.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, apperr.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE lower(email)=lower($1)`, email))
}

func (r *usersRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email)=lower($1))`, email).Scan(&exists)
	return exists, err
}

func (r *usersRepo) Update(ctx context.Context, u models.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET first_name=$2, last_name=$3, is_active=$4, updated_at=now() WHERE id=$1`,
		u.ID, u.FirstName, u.LastName, u.IsActive,
	)
	return err
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	// Owned events and their share tokens go with the user (ON DELETE CASCADE).
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}
