package services

import (
	"context"
	"log/slog"

	"github.com/eventtracker/server/internal/access"
	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/metrics"
	"github.com/eventtracker/server/internal/models"
	repo "github.com/eventtracker/server/internal/repository"
	"github.com/google/uuid"
)

// ShareService issues and resolves the public read-only capability tokens.
// Possession of a token is the only credential on the public path; no
// session is consulted there.
type ShareService struct {
	events repo.Events
	tokens repo.ShareTokens
	users  repo.Users
	audit  repo.AuditLogs
}

func NewShareService(events repo.Events, tokens repo.ShareTokens, users repo.Users, audit repo.AuditLogs) *ShareService {
	return &ShareService{events: events, tokens: tokens, users: users, audit: audit}
}

// EnsureShareToken returns the event's share token, generating one on first
// call. Repeated calls return the same token: the storage uniqueness
// constraint arbitrates concurrent first calls, so two racing callers still
// end up with one live token between them.
func (s *ShareService) EnsureShareToken(ctx context.Context, actorID, eventID string) (string, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	if err := access.Authorize(actorID, e); err != nil {
		return "", err
	}
	if e.ShareToken != nil {
		return *e.ShareToken, nil
	}

	token, issued, err := s.tokens.Ensure(ctx, e.ID, uuid.NewString())
	if err != nil {
		return "", err
	}
	// A caller that lost the issuance race gets the winner's token; only
	// the winner counts as an issuance.
	if issued {
		metrics.ShareLinksIssued.Inc()
		if s.audit != nil {
			if err := s.audit.Create(ctx, models.AuditLog{EntityType: "event", EntityID: &e.ID, Action: "share_token_issued", Details: nil}); err != nil {
				slog.Warn("audit write failed", "entity", "event", "action", "share_token_issued", "err", err)
			}
		}
	}
	return token, nil
}

// ResolvePublic exchanges a token for the reduced public view. The view
// carries the organizer's display name but no account identifiers.
func (s *ShareService) ResolvePublic(ctx context.Context, token string) (models.PublicEventView, error) {
	if _, err := uuid.Parse(token); err != nil {
		return models.PublicEventView{}, apperr.ErrNotFound
	}
	eventID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return models.PublicEventView{}, err
	}
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return models.PublicEventView{}, err
	}
	owner, err := s.users.GetByID(ctx, e.OwnerID)
	if err != nil {
		return models.PublicEventView{}, err
	}
	return models.PublicEventView{
		Title:         e.Title,
		DateTime:      e.DateTime,
		Location:      e.Location,
		Description:   e.Description,
		OrganizerName: owner.FullName(),
	}, nil
}
