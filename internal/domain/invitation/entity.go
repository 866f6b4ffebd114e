package invitation

import "time"

// InviteCode is a six-digit code an admin hands out so an employee can
// register under that admin.
type InviteCode struct {
	ID        string
	AdminID   string
	Code      string
	ExpiresAt time.Time
	UsedBy    *string
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsExpired checks if the code has expired at now.
func (c *InviteCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// CanBeUsed checks if the code is unused and still valid.
func (c *InviteCode) CanBeUsed(now time.Time) bool {
	return c.UsedAt == nil && !c.IsExpired(now)
}
