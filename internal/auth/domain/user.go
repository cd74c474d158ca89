package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user record can carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the root identity record. This service reads it during login
// and identity lookup; registration and admin mutation live elsewhere.
type User struct {
	ID           uuid.UUID
	Email        string // unique login key
	Name         string
	PasswordHash string // argon2id PHC string
	Role         string
	Active       bool
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the client-facing profile. The password hash never leaves
// the service.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Public strips a user down to its client-facing profile.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
