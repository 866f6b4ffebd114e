package office

import "context"

type OfficeRepository interface {
	// Get returns ErrOfficeNotFound when the admin has not saved an office.
	Get(ctx context.Context, adminID string) (Office, error)
	Upsert(ctx context.Context, office Office) (Office, error)
}
