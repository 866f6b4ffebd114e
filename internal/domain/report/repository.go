package report

import (
	"context"
	"time"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// GetDailyAttendance returns one row per employee and local work date in
	// [from, to). Employees without records get a single row with a nil Date.
	GetDailyAttendance(ctx context.Context, adminID string, from, to time.Time, timezone string) ([]DailyAttendanceRow, error)

	// GetPayrollSummary totals the payslips of one period per salary type.
	GetPayrollSummary(ctx context.Context, adminID string, periodStart time.Time) ([]PayrollSummaryRow, error)
}
