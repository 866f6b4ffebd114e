package report

import (
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyAttendanceReportRequest struct {
	AdminID string `json:"-"`
	Month   string `json:"month"` // YYYY-MM
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	return validateMonth(r.Month)
}

// Daily log statuses
const (
	StatusPresent = "present"
	StatusOpen    = "open"
	StatusAbsent  = "absent"
	StatusHoliday = "holiday"
	StatusOff     = "off"
)

type MonthlyAttendanceReport struct {
	Month       string `json:"month"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`
	WorkingDays int    `json:"working_days"`
	Holidays    int    `json:"holidays"`

	Employees []MonthlyAttendanceEmployee `json:"employees"`
}

type MonthlyAttendanceEmployee struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Position     *string `json:"position,omitempty"`

	Summary   AttendanceSummary    `json:"summary"`
	DailyLogs []AttendanceDailyLog `json:"daily_logs"`
}

type AttendanceSummary struct {
	PresentDays   int             `json:"present_days"`
	AbsentDays    int             `json:"absent_days"`
	WorkedMinutes int64           `json:"worked_minutes"`
	WorkedHours   decimal.Decimal `json:"worked_hours"`
	OpenRecords   int             `json:"open_records"`
}

type AttendanceDailyLog struct {
	Date          string  `json:"date"`
	DayOfWeek     string  `json:"day_of_week"`
	ClockIn       *string `json:"clock_in"`
	ClockOut      *string `json:"clock_out"`
	WorkedMinutes int64   `json:"worked_minutes"`
	Status        string  `json:"status"`
}

// DailyAttendanceRow is one employee-day aggregate read from the store.
type DailyAttendanceRow struct {
	EmployeeID    string
	EmployeeName  string
	Position      *string
	Date          *time.Time
	FirstCheckIn  *time.Time
	LastCheckOut  *time.Time
	WorkedMinutes int64
	ClosedRecords int
	OpenRecords   int
}

// ========================================
// PAYROLL SUMMARY REPORT
// ========================================

type PayrollSummaryReportRequest struct {
	AdminID string `json:"-"`
	Month   string `json:"month"` // YYYY-MM
}

func (r *PayrollSummaryReportRequest) Validate() error {
	return validateMonth(r.Month)
}

type PayrollSummaryReport struct {
	Month                   string              `json:"month"`
	PeriodStart             string              `json:"period_start"`
	PeriodEnd               string              `json:"period_end"`
	GeneratedAt             string              `json:"generated_at"`
	Payslips                int                 `json:"payslips"`
	EmployeesWithoutPayslip int64               `json:"employees_without_payslip"`
	TotalFinalSalary        decimal.Decimal     `json:"total_final_salary"`
	TotalDeductions         decimal.Decimal     `json:"total_deductions"`
	TotalOvertimePay        decimal.Decimal     `json:"total_overtime_pay"`
	BySalaryType            []PayrollSummaryRow `json:"by_salary_type"`
}

type PayrollSummaryRow struct {
	SalaryType       string          `json:"salary_type"`
	Payslips         int             `json:"payslips"`
	TotalFinalSalary decimal.Decimal `json:"total_final_salary"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalOvertimePay decimal.Decimal `json:"total_overtime_pay"`
}

func validateMonth(month string) error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(month); !ok {
		errs.Add("month", "month must be in YYYY-MM format")
	}

	return errs.Err()
}
