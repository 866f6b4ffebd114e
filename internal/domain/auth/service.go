package auth

import (
	"context"
)

type AuthService interface {
	// RegisterAdmin creates an admin account, which is its own organization
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (TokenResponse, error)

	// RegisterEmployee creates an employee under the admin owning the invite code
	RegisterEmployee(ctx context.Context, req RegisterEmployeeRequest) (TokenResponse, error)

	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// IssueSSEToken mints a short-lived token for the event stream
	IssueSSEToken(ctx context.Context, userID string) (SSETokenResponse, error)
}
