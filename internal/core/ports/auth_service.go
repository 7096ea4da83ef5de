package ports

import (
	"context"
	"time"

	"github.com/logica-uic/contest-backend/internal/core/domain"
)

// RegisterInput carries a new participant registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterResult distinguishes a fresh account from an idempotent replay.
// On replay Account holds the existing record's non-secret fields.
type RegisterResult struct {
	Account        *domain.Account
	AlreadyExisted bool
}

// LoginInput carries login credentials. Role selects the account partition
// and defaults to participant when empty.
type LoginInput struct {
	Email    string
	Password string
	Role     string
}

// LoginResult is returned on successful login. Token is delivered to the
// client as the authToken cookie.
type LoginResult struct {
	Token     string
	Name      string
	Role      string
	ExpiresAt time.Time
}

// ResetPasswordInput completes a recovery flow started by
// RequestPasswordReset.
type ResetPasswordInput struct {
	Email       string
	Role        string
	NewPassword string
	Code        string
}

// AuthService defines the authentication and credential-recovery use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email, role string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	ListParticipants(ctx context.Context) ([]domain.Account, error)
}

// CodeSender delivers a plaintext one-time code out-of-band. Delivery is
// best-effort and not idempotent; retries may produce duplicate mail.
type CodeSender interface {
	SendResetCode(ctx context.Context, recipient, code string) error
}
