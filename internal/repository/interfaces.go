package repository

import (
	"context"
	"time"

	"github.com/eventtracker/server/internal/models"
)

type TemporalFilter string

const (
	WhenAll      TemporalFilter = ""
	WhenUpcoming TemporalFilter = "upcoming"
	WhenPast     TemporalFilter = "past"
)

// EventFilter shapes ListByOwner queries. Ownership scoping is not part of
// the filter: every listing is bound to one owner by the call itself.
type EventFilter struct {
	// Search matches title, location or description, case-insensitive
	// substring, OR semantics.
	Search string
	// OrderBy is one of date_time, created_at, title; date_time when empty.
	OrderBy string
	Desc    bool
	// When partitions strictly around Now: upcoming means date_time > now,
	// past means date_time < now.
	When TemporalFilter
	Now  time.Time
}

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	// GetByEmail expects a normalized email.
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u models.User) error
	Delete(ctx context.Context, id string) error
}

type Events interface {
	Create(ctx context.Context, e models.Event) (models.Event, error)
	GetByID(ctx context.Context, id string) (models.Event, error)
	Update(ctx context.Context, e models.Event) (models.Event, error)
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, f EventFilter) ([]models.Event, error)
	// Stats computes all counts and the recent list from one snapshot.
	Stats(ctx context.Context, ownerID string, now time.Time) (models.OwnerStats, error)
}

type ShareTokens interface {
	// Ensure makes the event shareable and returns its live token. When a
	// token already exists (including one written by a concurrent caller),
	// the existing token wins and the candidate is discarded. The bool
	// reports whether the candidate was the one stored.
	Ensure(ctx context.Context, eventID, candidate string) (string, bool, error)
	GetByEvent(ctx context.Context, eventID string) (string, error)
	// Resolve returns the event id holding the token.
	Resolve(ctx context.Context, token string) (string, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
