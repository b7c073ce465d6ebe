package entities

import "time"

type AccessLevel string

const (
	AccessView AccessLevel = "view"
	AccessEdit AccessLevel = "edit"
)

// ShareLink grants read access to a user's wedding through an opaque token.
type ShareLink struct {
	Token       string      `json:"token"`
	UserID      string      `json:"userId"`
	AccessLevel AccessLevel `json:"accessLevel"`
	CreatedAt   time.Time   `json:"createdAt"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty"` // Pointer allows nil (no expiration)
}

// Expired reports whether the link is past its expiry at now.
func (l *ShareLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}
