package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/eventtracker/server/internal/api/httpx"
	"github.com/eventtracker/server/internal/middleware"
	"github.com/eventtracker/server/internal/models"
	"github.com/eventtracker/server/internal/services"
	"github.com/go-chi/chi/v5"
)

type EventsHandler struct {
	events        *services.EventService
	share         *services.ShareService
	publicBaseURL string
}

func NewEventsHandler(events *services.EventService, share *services.ShareService, publicBaseURL string) *EventsHandler {
	return &EventsHandler{events: events, share: share, publicBaseURL: publicBaseURL}
}

// eventListItem is the lightweight list shape; detail responses add
// description, share token and updated_at.
type eventListItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	DateTime   time.Time `json:"date_time"`
	Location   string    `json:"location"`
	IsUpcoming bool      `json:"is_upcoming"`
	IsPast     bool      `json:"is_past"`
	CreatedAt  time.Time `json:"created_at"`
}

type eventDetail struct {
	eventListItem
	Description *string   `json:"description,omitempty"`
	ShareToken  *string   `json:"share_token,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toListItem(e models.Event, now time.Time) eventListItem {
	return eventListItem{
		ID:         e.ID,
		Title:      e.Title,
		DateTime:   e.DateTime,
		Location:   e.Location,
		IsUpcoming: e.IsUpcoming(now),
		IsPast:     e.IsPast(now),
		CreatedAt:  e.CreatedAt,
	}
}

func toDetail(e models.Event, now time.Time) eventDetail {
	return eventDetail{
		eventListItem: toListItem(e, now),
		Description:   e.Description,
		ShareToken:    e.ShareToken,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toListItems(events []models.Event) []eventListItem {
	now := time.Now()
	out := make([]eventListItem, 0, len(events))
	for _, e := range events {
		out = append(out, toListItem(e, now))
	}
	return out
}

func actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing actor", nil)
	}
	return actorID, ok
}

// List handles GET /events with ?search= and ?ordering= (field name,
// "-" prefix for descending, like ?ordering=-created_at).
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	opts := services.ListOptions{Search: r.URL.Query().Get("search")}
	if ord := r.URL.Query().Get("ordering"); ord != "" {
		opts.Desc = strings.HasPrefix(ord, "-")
		opts.OrderBy = strings.TrimPrefix(ord, "-")
	}
	events, err := h.events.List(r.Context(), actorID, opts)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toListItems(events))
}

type createEventReq struct {
	Title       string    `json:"title"`
	DateTime    time.Time `json:"date_time"`
	Location    string    `json:"location"`
	Description *string   `json:"description"`
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	var req createEventReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	e, err := h.events.Create(r.Context(), actorID, services.CreateEventInput{
		Title:       req.Title,
		DateTime:    req.DateTime,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toDetail(e, time.Now()))
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	e, err := h.events.Get(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDetail(e, time.Now()))
}

type updateEventReq struct {
	Title       *string    `json:"title"`
	DateTime    *time.Time `json:"date_time"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
}

// Update accepts partial bodies: absent fields are left unchanged.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	var req updateEventReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	e, err := h.events.Update(r.Context(), actorID, chi.URLParam(r, "id"), services.EventPatch{
		Title:       req.Title,
		DateTime:    req.DateTime,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDetail(e, time.Now()))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	if err := h.events.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

func (h *EventsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	events, err := h.events.Upcoming(r.Context(), actorID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toListItems(events))
}

func (h *EventsHandler) Past(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	events, err := h.events.Past(r.Context(), actorID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toListItems(events))
}

type shareResp struct {
	ShareToken string `json:"share_token"`
	ShareURL   string `json:"share_url"`
}

// Share handles POST /events/{id}/share. Calling it again returns the same
// token.
func (h *EventsHandler) Share(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	token, err := h.share.EnsureShareToken(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, shareResp{
		ShareToken: token,
		ShareURL:   strings.TrimRight(h.publicBaseURL, "/") + "/api/v1/public/events/" + token,
	})
}
