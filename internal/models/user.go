package models

import (
	"strings"
	"time"
)

// User logs in with an email address; there is no username. Email is stored
// normalized (lowercase, trimmed) and is unique under that normalization.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail produces the canonical form used for uniqueness checks,
// lookups and storage. Always apply before comparing emails.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
