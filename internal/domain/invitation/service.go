package invitation

import "context"

// InvitationService defines the interface for invite code business logic
type InvitationService interface {
	// CreateInviteCode issues a fresh code for the admin
	CreateInviteCode(ctx context.Context, adminID string) (InviteCodeResponse, error)

	// Redeem validates and consumes a code inside the caller's transaction,
	// returning the owning admin's ID
	Redeem(ctx context.Context, code, userID string) (string, error)
}
