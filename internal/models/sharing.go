package models

import (
	"time"

	"vivaha-be/internal/entities"
)

// CreateShareLinkRequest is the body of POST /api/sharing/generate.
type CreateShareLinkRequest struct {
	AccessLevel string `json:"accessLevel" binding:"omitempty,oneof=view edit"`
}

// ShareLinkResponse describes a freshly generated link.
type ShareLinkResponse struct {
	ShareLink   string     `json:"shareLink"` // Full URL (client base URL + token)
	ShareToken  string     `json:"shareToken"`
	AccessLevel string     `json:"accessLevel"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// SharedWeddingResponse is what a share link opens.
type SharedWeddingResponse struct {
	AccessLevel string            `json:"accessLevel"`
	CoupleName  string            `json:"coupleName"`
	Wedding     *entities.Wedding `json:"wedding"`
}
