package handlers

import (
	"net/http"
	"time"

	"github.com/eventtracker/server/internal/api/httpx"
	"github.com/eventtracker/server/internal/services"
)

type DashboardHandler struct {
	events *services.EventService
}

func NewDashboardHandler(events *services.EventService) *DashboardHandler {
	return &DashboardHandler{events: events}
}

type dashboardResp struct {
	TotalEvents    int64           `json:"total_events"`
	UpcomingEvents int64           `json:"upcoming_events"`
	PastEvents     int64           `json:"past_events"`
	RecentEvents   []eventListItem `json:"recent_events"`
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	stats, err := h.events.DashboardStats(r.Context(), actorID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	now := time.Now()
	recent := make([]eventListItem, 0, len(stats.Recent))
	for _, e := range stats.Recent {
		recent = append(recent, toListItem(e, now))
	}
	httpx.WriteJSON(w, http.StatusOK, dashboardResp{
		TotalEvents:    stats.Total,
		UpcomingEvents: stats.UpcomingCount,
		PastEvents:     stats.PastCount,
		RecentEvents:   recent,
	})
}
