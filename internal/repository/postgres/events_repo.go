package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/models"
	"github.com/eventtracker/server/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type eventsRepo struct{ pool *pgxpool.Pool }

func NewEvents(pool *pgxpool.Pool) repository.Events {
	return &eventsRepo{pool: pool}
}

// Events are always read joined with their share token so callers see
// whether one has been issued.
const eventSelect = `SELECT e.id, e.owner_id, e.title, e.date_time, e.location, e.description, st.token::text, e.created_at, e.updated_at
FROM events e LEFT JOIN share_tokens st ON st.event_id = e.id`

func scanEvent(row pgx.Row) (models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &e.DateTime, &e.Location, &e.Description, &e.ShareToken, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Event{}, apperr.ErrNotFound
	}
	return e, err
}

func (r *eventsRepo) Create(ctx context.Context, e models.Event) (models.Event, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events(id, owner_id, title, date_time, location, description) VALUES($1,$2,$3,$4,$5,$6)`,
		id, e.OwnerID, e.Title, e.DateTime, e.Location, e.Description,
	)
	if err != nil {
		return models.Event{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *eventsRepo) GetByID(ctx context.Context, id string) (models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, eventSelect+` WHERE e.id=$1`, id))
}

func (r *eventsRepo) Update(ctx context.Context, e models.Event) (models.Event, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET title=$2, date_time=$3, location=$4, description=$5, updated_at=now() WHERE id=$1`,
		e.ID, e.Title, e.DateTime, e.Location, e.Description,
	)
	if err != nil {
		return models.Event{}, err
	}
	if tag.RowsAffected() == 0 {
		return models.Event{}, apperr.ErrNotFound
	}
	return r.GetByID(ctx, e.ID)
}

func (r *eventsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// escapeLike makes the search term match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

var orderColumns = map[string]string{
	"":           "e.date_time",
	"date_time":  "e.date_time",
	"created_at": "e.created_at",
	"title":      "e.title",
}

func (r *eventsRepo) ListByOwner(ctx context.Context, ownerID string, f repository.EventFilter) ([]models.Event, error) {
	q := eventSelect + ` WHERE e.owner_id=$1`
	args := []any{ownerID}

	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := "$" + strconv.Itoa(len(args))
		q += ` AND (e.title ILIKE ` + n + ` OR e.location ILIKE ` + n + ` OR e.description ILIKE ` + n + `)`
	}

	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	switch f.When {
	case repository.WhenUpcoming:
		args = append(args, now)
		q += ` AND e.date_time > $` + strconv.Itoa(len(args))
	case repository.WhenPast:
		args = append(args, now)
		q += ` AND e.date_time < $` + strconv.Itoa(len(args))
	}

	col, ok := orderColumns[f.OrderBy]
	if !ok {
		col = "e.date_time"
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	q += ` ORDER BY ` + col + ` ` + dir

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Stats runs inside one transaction so the counts and the recent list come
// from a single snapshot of the owner's events.
func (r *eventsRepo) Stats(ctx context.Context, ownerID string, now time.Time) (models.OwnerStats, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return models.OwnerStats{}, err
	}
	defer tx.Rollback(ctx)

	var s models.OwnerStats
	err = tx.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE date_time > $2),
		        count(*) FILTER (WHERE date_time < $2)
		 FROM events WHERE owner_id=$1`,
		ownerID, now,
	).Scan(&s.Total, &s.UpcomingCount, &s.PastCount)
	if err != nil {
		return models.OwnerStats{}, err
	}

	rows, err := tx.Query(ctx, eventSelect+` WHERE e.owner_id=$1 ORDER BY e.created_at DESC LIMIT 5`, ownerID)
	if err != nil {
		return models.OwnerStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return models.OwnerStats{}, err
		}
		s.Recent = append(s.Recent, e)
	}
	if err := rows.Err(); err != nil {
		return models.OwnerStats{}, err
	}
	return s, tx.Commit(ctx)
}
