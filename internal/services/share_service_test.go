package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newShareFixture(t *testing.T) (*ShareService, *EventService, *UserService) {
	t.Helper()
	users := newFakeUsers()
	events := newFakeEvents()
	tokens := newFakeShareTokens()
	audit := &fakeAudit{}
	return NewShareService(events, tokens, users, audit),
		NewEventService(events, audit),
		NewUserService(users, audit)
}

func TestEnsureShareTokenIdempotent(t *testing.T) {
	shareSvc, eventSvc, _ := newShareFixture(t)
	ctx := context.Background()
	now := time.Now()

	e, err := eventSvc.Create(ctx, "owner-1", validInput(now))
	require.NoError(t, err)

	first, err := shareSvc.EnsureShareToken(ctx, "owner-1", e.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	_, err = uuid.Parse(first)
	require.NoError(t, err)

	second, err := shareSvc.EnsureShareToken(ctx, "owner-1", e.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureShareTokenRecordsIssuanceOnce(t *testing.T) {
	users := newFakeUsers()
	events := newFakeEvents()
	tokens := newFakeShareTokens()
	audit := &fakeAudit{}
	shareSvc := NewShareService(events, tokens, users, audit)
	eventSvc := NewEventService(events, audit)
	ctx := context.Background()

	e, err := eventSvc.Create(ctx, "owner-1", validInput(time.Now()))
	require.NoError(t, err)

	first, err := shareSvc.EnsureShareToken(ctx, "owner-1", e.ID)
	require.NoError(t, err)
	second, err := shareSvc.EnsureShareToken(ctx, "owner-1", e.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// the second call found an existing token, so only one issuance is logged
	var issued int
	for _, l := range audit.entries {
		if l.Action == "share_token_issued" {
			issued++
		}
	}
	require.Equal(t, 1, issued)
}

func TestEnsureShareTokenNonOwnerMasked(t *testing.T) {
	shareSvc, eventSvc, _ := newShareFixture(t)
	ctx := context.Background()

	e, err := eventSvc.Create(ctx, "owner-1", validInput(time.Now()))
	require.NoError(t, err)

	_, err = shareSvc.EnsureShareToken(ctx, "owner-2", e.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolvePublicUnknownToken(t *testing.T) {
	shareSvc, _, _ := newShareFixture(t)
	ctx := context.Background()

	_, err := shareSvc.ResolvePublic(ctx, uuid.NewString())
	require.ErrorIs(t, err, apperr.ErrNotFound)

	// malformed tokens are not an error class of their own
	_, err = shareSvc.ResolvePublic(ctx, "not-a-token")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolvePublicView(t *testing.T) {
	shareSvc, eventSvc, userSvc := newShareFixture(t)
	ctx := context.Background()
	now := time.Now()

	owner, err := userSvc.Register(ctx, "alice@x.com", "Alice", "A", "password123")
	require.NoError(t, err)

	in := validInput(now)
	desc := "Weekly alignment"
	in.Description = &desc
	e, err := eventSvc.Create(ctx, owner.ID, in)
	require.NoError(t, err)

	token, err := shareSvc.EnsureShareToken(ctx, owner.ID, e.ID)
	require.NoError(t, err)

	view, err := shareSvc.ResolvePublic(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "Team Sync", view.Title)
	require.Equal(t, "Room 101 Main Bldg", view.Location)
	require.Equal(t, "Alice A", view.OrganizerName)
	require.NotNil(t, view.Description)
	require.Equal(t, "Weekly alignment", *view.Description)

	// the serialized view must not leak account data
	b, err := json.Marshal(view)
	require.NoError(t, err)
	require.NotContains(t, string(b), owner.ID)
	require.NotContains(t, string(b), "alice@x.com")
	require.NotContains(t, string(b), "email")
}

func TestResolvePublicBeforeIssuance(t *testing.T) {
	shareSvc, eventSvc, _ := newShareFixture(t)
	ctx := context.Background()

	e, err := eventSvc.Create(ctx, "owner-1", validInput(time.Now()))
	require.NoError(t, err)
	require.Nil(t, e.ShareToken)

	// no token exists yet, so nothing resolves
	_, err = shareSvc.ResolvePublic(ctx, uuid.NewString())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
