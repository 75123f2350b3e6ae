package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/models"
	repo "github.com/eventtracker/server/internal/repository"
	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the storage contracts the services
// rely on: normalized-email uniqueness, unique one-token-per-event, and
// strict temporal partitioning.

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if models.NormalizeEmail(existing.Email) == models.NormalizeEmail(u.Email) {
			return models.User{}, apperr.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if models.NormalizeEmail(u.Email) == models.NormalizeEmail(email) {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}

func (f *fakeUsers) ExistsEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeUsers) Update(_ context.Context, u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return apperr.ErrNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeEvents struct {
	mu   sync.Mutex
	byID map[string]models.Event
	seq  int
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{byID: map[string]models.Event{}}
}

func (f *fakeEvents) Create(_ context.Context, e models.Event) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uuid.NewString()
	f.seq++
	// monotonic created_at so recent-ordering is deterministic
	e.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	e.UpdatedAt = e.CreatedAt
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEvents) GetByID(_ context.Context, id string) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return models.Event{}, apperr.ErrNotFound
	}
	return e, nil
}

func (f *fakeEvents) Update(_ context.Context, e models.Event) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.byID[e.ID]
	if !ok {
		return models.Event{}, apperr.ErrNotFound
	}
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = time.Now()
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEvents) ListByOwner(_ context.Context, ownerID string, filter repo.EventFilter) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	var out []models.Event
	for _, e := range f.byID {
		if e.OwnerID != ownerID {
			continue
		}
		if filter.Search != "" && !matches(e, filter.Search) {
			continue
		}
		switch filter.When {
		case repo.WhenUpcoming:
			if !e.DateTime.After(now) {
				continue
			}
		case repo.WhenPast:
			if !e.DateTime.Before(now) {
				continue
			}
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		var less bool
		switch filter.OrderBy {
		case "created_at":
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		case "title":
			less = out[i].Title < out[j].Title
		default:
			less = out[i].DateTime.Before(out[j].DateTime)
		}
		if filter.Desc {
			return !less
		}
		return less
	})
	return out, nil
}

func matches(e models.Event, search string) bool {
	s := strings.ToLower(search)
	if strings.Contains(strings.ToLower(e.Title), s) || strings.Contains(strings.ToLower(e.Location), s) {
		return true
	}
	return e.Description != nil && strings.Contains(strings.ToLower(*e.Description), s)
}

func (f *fakeEvents) Stats(ctx context.Context, ownerID string, now time.Time) (models.OwnerStats, error) {
	f.mu.Lock()
	var s models.OwnerStats
	var all []models.Event
	for _, e := range f.byID {
		if e.OwnerID != ownerID {
			continue
		}
		s.Total++
		if e.DateTime.After(now) {
			s.UpcomingCount++
		}
		if e.DateTime.Before(now) {
			s.PastCount++
		}
		all = append(all, e)
	}
	f.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > 5 {
		all = all[:5]
	}
	s.Recent = all
	return s, nil
}

type fakeShareTokens struct {
	mu      sync.Mutex
	byEvent map[string]string
	byToken map[string]string
}

func newFakeShareTokens() *fakeShareTokens {
	return &fakeShareTokens{byEvent: map[string]string{}, byToken: map[string]string{}}
}

func (f *fakeShareTokens) Ensure(_ context.Context, eventID, candidate string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// first writer wins, same as ON CONFLICT DO NOTHING + read-back
	if existing, ok := f.byEvent[eventID]; ok {
		return existing, false, nil
	}
	f.byEvent[eventID] = candidate
	f.byToken[candidate] = eventID
	return candidate, true, nil
}

func (f *fakeShareTokens) GetByEvent(_ context.Context, eventID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byEvent[eventID]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return t, nil
}

func (f *fakeShareTokens) Resolve(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byToken[token]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return id, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (f *fakeAudit) Create(_ context.Context, l models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, l)
	return nil
}
