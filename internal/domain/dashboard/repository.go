package dashboard

import (
	"context"
	"time"
)

// DailyPresence is the number of distinct employees who checked in on a date.
type DailyPresence struct {
	Date    time.Time
	Present int64
}

// Activity is one clock event, derived from an attendance record.
type Activity struct {
	EmployeeID   string
	EmployeeName string
	Kind         string // "in" or "out"
	At           time.Time
}

// DashboardRepository aggregates attendance for the admin dashboard.
// Windows are half-open: [from, to).
type DashboardRepository interface {
	CountEmployees(ctx context.Context, adminID string) (int64, error)
	CountPresent(ctx context.Context, adminID string, from, to time.Time) (int64, error)

	// SumWorkedMinutes totals closed records only.
	SumWorkedMinutes(ctx context.Context, adminID string, from, to time.Time) (int64, error)

	// DailyPresence groups check-ins by calendar date in the named timezone.
	DailyPresence(ctx context.Context, adminID string, from, to time.Time, timezone string) ([]DailyPresence, error)

	// LatestActivities returns the newest check-ins and check-outs in the window.
	LatestActivities(ctx context.Context, adminID string, from, to time.Time, limit int) ([]Activity, error)
}
