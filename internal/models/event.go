package models

import "time"

// Event belongs to exactly one owner. ShareToken is populated from the
// share_tokens lookup table when one has been issued; it stays nil otherwise.
type Event struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Title       string    `json:"title"`
	DateTime    time.Time `json:"date_time"`
	Location    string    `json:"location"`
	Description *string   `json:"description,omitempty"`
	ShareToken  *string   `json:"share_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsUpcoming and IsPast use strict inequalities: an event exactly at now is
// neither upcoming nor past.
func (e Event) IsUpcoming(now time.Time) bool { return e.DateTime.After(now) }

func (e Event) IsPast(now time.Time) bool { return e.DateTime.Before(now) }

// PublicEventView is what a share-token holder gets: event details and the
// organizer's display name, nothing that identifies the owner's account.
type PublicEventView struct {
	Title         string    `json:"title"`
	DateTime      time.Time `json:"date_time"`
	Location      string    `json:"location"`
	Description   *string   `json:"description,omitempty"`
	OrganizerName string    `json:"organizer_name"`
}

// OwnerStats backs the dashboard. Total counts every event; the upcoming and
// past buckets use the strict partition, so an event exactly at the snapshot
// instant is in neither bucket.
type OwnerStats struct {
	Total         int64   `json:"total_events"`
	UpcomingCount int64   `json:"upcoming_events"`
	PastCount     int64   `json:"past_events"`
	Recent        []Event `json:"recent_events"`
}
