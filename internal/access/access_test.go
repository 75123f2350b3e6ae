package access

import (
	"testing"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/models"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	e := models.Event{ID: "e1", OwnerID: "u1"}

	require.NoError(t, Authorize("u1", e))

	// non-owners get not-found, never forbidden
	err := Authorize("u2", e)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.NotErrorIs(t, err, apperr.ErrForbidden)

	// anonymous actors never own anything
	require.ErrorIs(t, Authorize("", e), apperr.ErrNotFound)
	require.False(t, IsOwner("", models.Event{OwnerID: ""}))
}
