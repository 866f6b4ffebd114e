package payroll

import (
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// CalculationDetails is the breakdown persisted with every payslip. It is
// stored as JSONB so it keeps the numbers that produced FinalSalary even if
// the salary model changes later.
type CalculationDetails struct {
	SalaryModelName     string          `json:"salary_model_name"`
	TotalWorkDays       int             `json:"total_work_days"`
	TotalWorkMinutes    int64           `json:"total_work_minutes"`
	TotalAbsentDays     int             `json:"total_absent_days"`
	OvertimeMinutes     int64           `json:"overtime_minutes"`
	DeductionsApplied   decimal.Decimal `json:"deductions_applied"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	WorkingDaysInPeriod int             `json:"working_days_in_period"`
	HolidaysInPeriod    int             `json:"holidays_in_period"`
	OpenRecords         int             `json:"open_records"`
}

// Payslip is the pay snapshot of one employee for one month.
type Payslip struct {
	ID          string
	EmployeeID  string
	AdminID     string
	PeriodStart time.Time
	PeriodEnd   time.Time
	SalaryType  salary.SalaryType
	FinalSalary decimal.Decimal
	Details     CalculationDetails
	GeneratedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName     *string
	EmployeePosition *string
}

// Period is an inclusive range of calendar dates.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the calendar month containing t, in loc.
func MonthPeriod(t time.Time, loc *time.Location) Period {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// Contains reports whether t falls on or between the period's dates. The end
// date covers the whole day.
func (p Period) Contains(t time.Time) bool {
	t = t.In(p.Start.Location())
	return !t.Before(p.Start) && t.Before(p.EndExclusive())
}

// Through ends the period on t's date when t falls inside it, so days that
// have not happened yet are left out. Other periods are returned unchanged.
func (p Period) Through(t time.Time) Period {
	if !p.Contains(t) {
		return p
	}
	t = t.In(p.Start.Location())
	p.End = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return p
}

// EndExclusive is the first instant after the period.
func (p Period) EndExclusive() time.Time {
	end := p.End.In(p.Start.Location())
	return time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)
}

// GenerateFailure records why one employee got no payslip.
type GenerateFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Reason       string `json:"reason"`
}

// GenerateResult summarizes a generation run. Failures never abort the run.
type GenerateResult struct {
	PeriodStart string            `json:"period_start"`
	PeriodEnd   string            `json:"period_end"`
	Generated   int               `json:"generated"`
	Skipped     int               `json:"skipped"`
	Failures    []GenerateFailure `json:"failures"`
	TimedOut    bool              `json:"timed_out"`
}

// TotalEstimate is an organization-wide, unpersisted pay estimate.
type TotalEstimate struct {
	Total     decimal.Decimal
	Employees int
	Failed    int
}
