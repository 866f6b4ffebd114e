package payroll

import "context"

type PayrollService interface {
	// GeneratePayslips evaluates every assigned employee of the admin for the
	// month and upserts their payslips.
	GeneratePayslips(ctx context.Context, req GeneratePayslipsRequest) (GenerateResult, error)

	ListPayslips(ctx context.Context, filter PayslipFilter) ([]PayslipResponse, error)
	GetPayslip(ctx context.Context, id string, adminID string) (PayslipResponse, error)
	ListMyPayslips(ctx context.Context, employeeID string) ([]PayslipResponse, error)
	GetMyPayslip(ctx context.Context, id string, employeeID string) (PayslipResponse, error)

	// EstimateSalary evaluates an arbitrary range without persisting anything.
	// A range that contains today stops at today.
	EstimateSalary(ctx context.Context, req EstimateSalaryRequest) (SalaryEstimateResponse, error)

	// EstimateTotal sums estimates over every assigned employee of the admin,
	// with the same cutoff at today.
	EstimateTotal(ctx context.Context, adminID string, period Period) (TotalEstimate, error)
}
