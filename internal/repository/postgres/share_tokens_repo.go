package postgres

import (
	"context"
	"errors"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type shareTokensRepo struct{ pool *pgxpool.Pool }

func NewShareTokens(pool *pgxpool.Pool) repository.ShareTokens {
	return &shareTokensRepo{pool: pool}
}

// Ensure relies on the UNIQUE(event_id) constraint to arbitrate concurrent
// issuance: ON CONFLICT DO NOTHING drops the loser's candidate, then the
// read-back returns whichever token actually landed.
func (r *shareTokensRepo) Ensure(ctx context.Context, eventID, candidate string) (string, bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO share_tokens(token, event_id) VALUES($1,$2) ON CONFLICT (event_id) DO NOTHING`,
		candidate, eventID,
	)
	if err != nil {
		return "", false, err
	}
	token, err := r.GetByEvent(ctx, eventID)
	if err != nil {
		return "", false, err
	}
	return token, tag.RowsAffected() == 1, nil
}

func (r *shareTokensRepo) GetByEvent(ctx context.Context, eventID string) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx, `SELECT token::text FROM share_tokens WHERE event_id=$1`, eventID).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	return token, err
}

func (r *shareTokensRepo) Resolve(ctx context.Context, token string) (string, error) {
	var eventID string
	err := r.pool.QueryRow(ctx, `SELECT event_id FROM share_tokens WHERE token=$1`, token).Scan(&eventID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	return eventID, err
}
