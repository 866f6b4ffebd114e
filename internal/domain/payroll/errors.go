package payroll

import "errors"

var (
	ErrPayslipNotFound    = errors.New("payslip not found")
	ErrInvalidPeriod      = errors.New("invalid payroll period")
	ErrGenerationTimedOut = errors.New("payslip generation timed out before every employee was processed")
)
