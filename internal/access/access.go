// Package access decides who may touch an event, independent of storage.
// Ownership is the only grant: there is no shared or collaborative access,
// and the public share path is a separate token-gated channel that never
// consults this package.
package access

import (
	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/models"
)

func IsOwner(actorID string, e models.Event) bool {
	return actorID != "" && actorID == e.OwnerID
}

// Authorize gates both reads and writes. A non-owner gets ErrNotFound, not
// ErrForbidden, so an unauthorized caller cannot learn that the event exists.
func Authorize(actorID string, e models.Event) error {
	if !IsOwner(actorID, e) {
		return apperr.ErrNotFound
	}
	return nil
}
