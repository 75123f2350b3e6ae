package handlers

import (
	"net/http"

	"github.com/eventtracker/server/internal/api/httpx"
	"github.com/eventtracker/server/internal/services"
	"github.com/go-chi/chi/v5"
)

// PublicHandler serves the unauthenticated share-token path. The token is
// the only credential; nothing here reads a session.
type PublicHandler struct {
	share *services.ShareService
}

func NewPublicHandler(share *services.ShareService) *PublicHandler {
	return &PublicHandler{share: share}
}

func (h *PublicHandler) Event(w http.ResponseWriter, r *http.Request) {
	view, err := h.share.ResolvePublic(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}
