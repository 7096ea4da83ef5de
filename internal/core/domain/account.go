package domain

import (
	"errors"
	"time"
)

// Roles select which account partition (store collection) an operation
// applies to.
const (
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

// ValidRole reports whether role names a known account partition.
func ValidRole(role string) bool {
	return role == RoleOrganizer || role == RoleParticipant
}

var (
	ErrValidation         = errors.New("missing or malformed input")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCode        = errors.New("invalid one-time code")
	ErrCodeExpired        = errors.New("one-time code expired")
	ErrNoResetInProgress  = errors.New("no password reset in progress")
	ErrPartialReset       = errors.New("password reset partially applied")
	ErrNotificationFailed = errors.New("notification delivery failed")
)

// PendingReset records an outstanding password-recovery code. Presence of
// the struct is the OTP-pending state; a nil pointer means no recovery is in
// progress. Only the hash of the code is ever stored.
type PendingReset struct {
	CodeHash string    `json:"-"`
	IssuedAt time.Time `json:"-"`
}

// Account models a registered participant or organizer. Email is the
// immutable identity key, unique within its partition.
type Account struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	PendingReset *PendingReset `json:"-"`
	// SessionMarker holds the id of the most recently issued session token.
	// Informational only: token verification never consults it.
	SessionMarker string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
