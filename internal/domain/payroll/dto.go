package payroll

import (
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// GeneratePayslipsRequest accepts any date inside the target month, as
// YYYY-MM or YYYY-MM-DD.
type GeneratePayslipsRequest struct {
	AdminID     string `json:"-"`
	PeriodStart string `json:"period_start"`
}

func (r *GeneratePayslipsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AdminID) {
		errs.Add("admin_id", "admin_id is required")
	}
	if _, ok := parsePeriod(r.PeriodStart, time.UTC); !ok {
		errs.Add("period_start", "period_start must be in YYYY-MM or YYYY-MM-DD format")
	}

	return errs.Err()
}

// Period resolves the request to its calendar month in loc. Call after Validate.
func (r *GeneratePayslipsRequest) Period(loc *time.Location) Period {
	t, _ := parsePeriod(r.PeriodStart, loc)
	return MonthPeriod(t, loc)
}

func parsePeriod(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01", s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

type PayslipFilter struct {
	AdminID string `json:"-"`
	Period  string `json:"period"` // YYYY-MM
}

func (f *PayslipFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(f.Period); !ok {
		errs.Add("period", "period must be in YYYY-MM format")
	}

	return errs.Err()
}

// PeriodStart returns the first day of the filtered month in loc.
func (f *PayslipFilter) PeriodStart(loc *time.Location) time.Time {
	t, _ := time.ParseInLocation("2006-01", f.Period, loc)
	return t
}

type PayslipResponse struct {
	ID                 string             `json:"id"`
	EmployeeID         string             `json:"employee_id"`
	EmployeeName       *string            `json:"employee_name,omitempty"`
	EmployeePosition   *string            `json:"employee_position,omitempty"`
	PeriodStart        string             `json:"period_start_date"`
	PeriodEnd          string             `json:"period_end_date"`
	SalaryType         salary.SalaryType  `json:"salary_type"`
	FinalSalary        decimal.Decimal    `json:"final_salary"`
	CalculationDetails CalculationDetails `json:"calculation_details"`
	GeneratedAt        string             `json:"generated_at"`
}

func ToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		EmployeeName:       p.EmployeeName,
		EmployeePosition:   p.EmployeePosition,
		PeriodStart:        p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          p.PeriodEnd.Format("2006-01-02"),
		SalaryType:         p.SalaryType,
		FinalSalary:        p.FinalSalary,
		CalculationDetails: p.Details,
		GeneratedAt:        p.GeneratedAt.Format(time.RFC3339),
	}
}

// EstimateSalaryRequest evaluates [StartDate, EndDate] for one employee.
type EstimateSalaryRequest struct {
	AdminID    string `json:"-"`
	EmployeeID string `json:"-"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

func (r *EstimateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if okStart && okEnd {
		if end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else if end.Sub(start) > 366*24*time.Hour {
			errs.Add("end_date", "range must not exceed one year")
		}
	}

	return errs.Err()
}

// Period resolves the request dates in loc. Call after Validate.
func (r *EstimateSalaryRequest) Period(loc *time.Location) Period {
	start, _ := time.ParseInLocation("2006-01-02", r.StartDate, loc)
	end, _ := time.ParseInLocation("2006-01-02", r.EndDate, loc)
	return Period{Start: start, End: end}
}

type SalaryEstimateResponse struct {
	EmployeeID         string             `json:"employee_id"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	SalaryType         salary.SalaryType  `json:"salary_type"`
	EstimatedSalary    decimal.Decimal    `json:"estimated_salary"`
	CalculationDetails CalculationDetails `json:"calculation_details"`
}
