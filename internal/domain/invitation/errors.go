package invitation

import "errors"

var (
	ErrInviteCodeNotFound    = errors.New("invite code not found")
	ErrInviteCodeExpired     = errors.New("invite code has expired")
	ErrInviteCodeAlreadyUsed = errors.New("invite code has already been used")
	ErrInviteCodeCollision   = errors.New("could not allocate a unique invite code")
)
