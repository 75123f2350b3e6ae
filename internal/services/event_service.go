package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/eventtracker/server/internal/access"
	"github.com/eventtracker/server/internal/metrics"
	"github.com/eventtracker/server/internal/models"
	repo "github.com/eventtracker/server/internal/repository"
	"github.com/eventtracker/server/internal/validate"
)

type EventService struct {
	events repo.Events
	audit  repo.AuditLogs
	now    func() time.Time
}

func NewEventService(events repo.Events, audit repo.AuditLogs) *EventService {
	return &EventService{events: events, audit: audit, now: time.Now}
}

type CreateEventInput struct {
	Title       string
	DateTime    time.Time
	Location    string
	Description *string
}

// EventPatch carries only the fields being changed; nil means "leave as is".
// An empty description clears it.
type EventPatch struct {
	Title       *string
	DateTime    *time.Time
	Location    *string
	Description *string
}

// ListOptions is the caller-facing subset of the repository filter; the
// owner scope and temporal partition are supplied by the service methods.
type ListOptions struct {
	Search  string
	OrderBy string
	Desc    bool
}

// Create validates all fields together so the caller sees every violation,
// not just the first. The future-date rule applies here and only here.
func (s *EventService) Create(ctx context.Context, actorID string, in CreateEventInput) (models.Event, error) {
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)

	var errs validate.Errs
	errs.Add(validate.MinLen("title", title, 3))
	errs.Add(validate.MaxLen("title", title, 200))
	errs.Add(validate.MinLen("location", location, 5))
	if in.DateTime.IsZero() {
		errs.Add(&validate.ErrField{Field: "date_time", Msg: "required"})
	} else {
		errs.Add(validate.Future("date_time", in.DateTime, s.now()))
	}
	if err := errs.Err(); err != nil {
		return models.Event{}, err
	}

	e, err := s.events.Create(ctx, models.Event{
		OwnerID:     actorID,
		Title:       title,
		DateTime:    in.DateTime,
		Location:    location,
		Description: normalizeDescription(in.Description),
	})
	if err != nil {
		return models.Event{}, err
	}
	metrics.EventsCreated.Inc()
	s.writeAudit(ctx, e.ID, "created", map[string]any{"title": e.Title})
	return e, nil
}

// Update re-validates only the fields being changed. The future-date rule is
// deliberately absent: an event may be edited after its date has passed, and
// it may be moved into the past.
func (s *EventService) Update(ctx context.Context, actorID, eventID string, patch EventPatch) (models.Event, error) {
	e, err := s.get(ctx, actorID, eventID)
	if err != nil {
		return models.Event{}, err
	}

	var errs validate.Errs
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		errs.Add(validate.MinLen("title", title, 3))
		errs.Add(validate.MaxLen("title", title, 200))
		e.Title = title
	}
	if patch.Location != nil {
		location := strings.TrimSpace(*patch.Location)
		errs.Add(validate.MinLen("location", location, 5))
		e.Location = location
	}
	if patch.DateTime != nil {
		if patch.DateTime.IsZero() {
			errs.Add(&validate.ErrField{Field: "date_time", Msg: "required"})
		} else {
			e.DateTime = *patch.DateTime
		}
	}
	if patch.Description != nil {
		e.Description = normalizeDescription(patch.Description)
	}
	if err := errs.Err(); err != nil {
		return models.Event{}, err
	}

	updated, err := s.events.Update(ctx, e)
	if err != nil {
		return models.Event{}, err
	}
	s.writeAudit(ctx, updated.ID, "updated", nil)
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, actorID, eventID string) error {
	e, err := s.get(ctx, actorID, eventID)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, e.ID); err != nil {
		return err
	}
	s.writeAudit(ctx, e.ID, "deleted", map[string]any{"title": e.Title})
	return nil
}

func (s *EventService) Get(ctx context.Context, actorID, eventID string) (models.Event, error) {
	return s.get(ctx, actorID, eventID)
}

// get fetches and authorizes in one place. Authorization failures surface as
// not-found so existence of other users' events is never disclosed.
func (s *EventService) get(ctx context.Context, actorID, eventID string) (models.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return models.Event{}, err
	}
	if err := access.Authorize(actorID, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *EventService) List(ctx context.Context, actorID string, opts ListOptions) ([]models.Event, error) {
	return s.events.ListByOwner(ctx, actorID, repo.EventFilter{
		Search:  opts.Search,
		OrderBy: opts.OrderBy,
		Desc:    opts.Desc,
		Now:     s.now(),
	})
}

// Upcoming lists strictly-future events, soonest first.
func (s *EventService) Upcoming(ctx context.Context, actorID string) ([]models.Event, error) {
	return s.events.ListByOwner(ctx, actorID, repo.EventFilter{
		When:    repo.WhenUpcoming,
		OrderBy: "date_time",
		Now:     s.now(),
	})
}

// Past lists strictly-past events, most recent first.
func (s *EventService) Past(ctx context.Context, actorID string) ([]models.Event, error) {
	return s.events.ListByOwner(ctx, actorID, repo.EventFilter{
		When:    repo.WhenPast,
		OrderBy: "date_time",
		Desc:    true,
		Now:     s.now(),
	})
}

func (s *EventService) DashboardStats(ctx context.Context, actorID string) (models.OwnerStats, error) {
	return s.events.Stats(ctx, actorID, s.now())
}

func (s *EventService) writeAudit(ctx context.Context, id, action string, details map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Create(ctx, models.AuditLog{EntityType: "event", EntityID: &id, Action: action, Details: details}); err != nil {
		slog.Warn("audit write failed", "entity", "event", "action", action, "err", err)
	}
}

func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	v := strings.TrimSpace(*d)
	if v == "" {
		return nil
	}
	return &v
}
