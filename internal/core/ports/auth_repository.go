package ports

import (
	"context"

	"github.com/logica-uic/contest-backend/internal/core/domain"
)

// AccountRepository is the credential store: point lookups by email within a
// role partition, inserts, and field updates. No cross-document transactions
// are assumed; CompleteReset relies on per-document atomicity only.
type AccountRepository interface {
	FindByEmail(ctx context.Context, role, email string) (*domain.Account, error)
	Create(ctx context.Context, role string, account *domain.Account) (*domain.Account, error)
	ListParticipants(ctx context.Context) ([]domain.Account, error)

	// SetPendingReset stores the hash of an outstanding recovery code.
	SetPendingReset(ctx context.Context, role, email string, reset domain.PendingReset) error

	// CompleteReset writes the new password hash and clears the pending
	// reset in one conditional update keyed on the current code hash.
	// Returns domain.ErrPartialReset when the account's reset state changed
	// underneath the caller (compare-and-swap miss).
	CompleteReset(ctx context.Context, role, email, currentCodeHash, newPasswordHash string) error

	// RecordSessionMarker stores the id of the most recently issued session
	// token. Best-effort from the caller's perspective.
	RecordSessionMarker(ctx context.Context, role, email, marker string) error
}
