package payroll

import (
	"context"
	"time"
)

// PayslipRepository defines data access methods for payslips.
type PayslipRepository interface {
	// Upsert writes the payslip for (employee, period start) atomically,
	// replacing any earlier snapshot for the same key.
	Upsert(ctx context.Context, payslip Payslip) (Payslip, error)

	GetByID(ctx context.Context, id string, adminID string) (Payslip, error)
	GetByIDForEmployee(ctx context.Context, id string, employeeID string) (Payslip, error)
	ListByPeriod(ctx context.Context, adminID string, periodStart time.Time) ([]Payslip, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Payslip, error)
}
