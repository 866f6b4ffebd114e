package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	ListByYear(ctx context.Context, adminID string, year int) ([]Holiday, error)

	// ListDatesBetween returns holiday dates within [from, to], inclusive.
	ListDatesBetween(ctx context.Context, adminID string, from, to time.Time) ([]time.Time, error)

	Delete(ctx context.Context, id string, adminID string) error
}
