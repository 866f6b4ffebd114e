package invitation

import "context"

// InviteCodeRepository defines the interface for invite code data access
type InviteCodeRepository interface {
	// Create stores a code. A clash with another unused code returns
	// ErrInviteCodeCollision.
	Create(ctx context.Context, code InviteCode) (InviteCode, error)

	// GetActiveByCode retrieves the unused code row, locking it for the
	// current transaction.
	GetActiveByCode(ctx context.Context, code string) (InviteCode, error)

	// MarkUsed records who consumed the code
	MarkUsed(ctx context.Context, id, userID string) error
}
