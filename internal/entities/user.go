package entities

import "time"

// UserRole is the account holder's relationship to the wedding.
type UserRole string

const (
	UserRoleBride   UserRole = "bride"
	UserRoleGroom   UserRole = "groom"
	UserRoleParent  UserRole = "parent"
	UserRoleFriend  UserRole = "friend"
	UserRolePlanner UserRole = "planner"
	UserRoleOther   UserRole = "other"
)

// User represents a user entity in the database
type User struct {
	ID                  string          `json:"id"` // UUID
	Email               string          `json:"email"`
	PasswordHash        string          `json:"-"` // Don't expose password hash in JSON
	Name                string          `json:"name"`
	Role                UserRole        `json:"role"`
	IsAdmin             bool            `json:"isAdmin"`
	OnboardingCompleted bool            `json:"onboardingCompleted"`
	OnboardingData      *OnboardingData `json:"onboardingData,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}
