package dashboard

import (
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== ADMIN DASHBOARD ==========

// AdminDashboardRequest covers [StartDate, EndDate]. Empty dates default to
// the current month.
type AdminDashboardRequest struct {
	AdminID   string `json:"-"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *AdminDashboardRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.StartDate == "") != (r.EndDate == "") {
		errs.Add("start_date", "start_date and end_date must be given together")
		return errs.Err()
	}
	if r.StartDate == "" {
		return nil
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	return errs.Err()
}

type AdminDashboardResponse struct {
	StartDate            string          `json:"start_date"`
	EndDate              string          `json:"end_date"`
	TotalEmployees       int64           `json:"total_employees"`
	PresentToday         int64           `json:"present_today"`
	AbsentToday          int64           `json:"absent_today"`
	AverageWorkHours     decimal.Decimal `json:"average_work_hours"` // per employee over the range
	TotalEstimatedSalary decimal.Decimal `json:"total_estimated_salary"`
	Last7Days            []DailyItem     `json:"last_7_days"`
	TodayActivities      []ActivityItem  `json:"today_activities"`
}

// DailyItem is one bar of the weekly attendance chart
type DailyItem struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Weekday string `json:"weekday"`
	Present int64  `json:"present"`
}

type ActivityItem struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Kind         string `json:"kind"`
	Time         string `json:"time"` // HH:MM
}

// ========== EMPLOYEE DASHBOARD ==========

type EmployeeDashboardRequest struct {
	EmployeeID string `json:"-"`
	AdminID    string `json:"-"`
	Month      string `json:"month"` // YYYY-MM, defaults to the current month
}

func (r *EmployeeDashboardRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs.Add("month", "month must be in YYYY-MM format")
		}
	}

	return errs.Err()
}

type EmployeeDashboardResponse struct {
	Month           string                    `json:"month"`
	PresentDays     int                       `json:"present_days"`
	WorkedHours     decimal.Decimal           `json:"worked_hours"`
	HasSalaryModel  bool                      `json:"has_salary_model"`
	SalaryType      string                    `json:"salary_type,omitempty"`
	EstimatedSalary decimal.Decimal           `json:"estimated_salary"`
	Today           attendance.StatusResponse `json:"today"`
}
