package salary

import (
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateSalaryModelRequest struct {
	AdminID                string           `json:"-"`
	ModelName              string           `json:"model_name"`
	SalaryType             SalaryType       `json:"salary_type"`
	BaseSalary             decimal.Decimal  `json:"base_salary"`
	DeductionPerDay        decimal.Decimal  `json:"deduction_per_day"`
	OvertimeBonusPerHour   decimal.Decimal  `json:"overtime_bonus_per_hour"`
	WorkHoursPerDay        *decimal.Decimal `json:"work_hours_per_day,omitempty"`
	OvertimeThresholdHours *decimal.Decimal `json:"overtime_threshold_hours,omitempty"`
}

func (r *CreateSalaryModelRequest) Validate() error {
	var errs validator.ValidationErrors

	r.SalaryType = r.SalaryType.Normalize()
	validateModelFields(&errs, r.ModelName, r.SalaryType, r.BaseSalary, r.DeductionPerDay,
		r.OvertimeBonusPerHour, r.WorkHoursPerDay, r.OvertimeThresholdHours)

	return errs.Err()
}

// ToEntity builds a new model, defaulting work hours per day to eight.
func (r *CreateSalaryModelRequest) ToEntity() SalaryModel {
	workHours := DefaultWorkHoursPerDay
	if r.WorkHoursPerDay != nil {
		workHours = *r.WorkHoursPerDay
	}
	return SalaryModel{
		AdminID:                r.AdminID,
		ModelName:              r.ModelName,
		SalaryType:             r.SalaryType.Normalize(),
		BaseSalary:             r.BaseSalary,
		DeductionPerDay:        r.DeductionPerDay,
		OvertimeBonusPerHour:   r.OvertimeBonusPerHour,
		WorkHoursPerDay:        workHours,
		OvertimeThresholdHours: r.OvertimeThresholdHours,
	}
}

// UpdateSalaryModelRequest replaces every editable field.
type UpdateSalaryModelRequest struct {
	ID string `json:"-"`
	CreateSalaryModelRequest
}

func (r *UpdateSalaryModelRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	r.SalaryType = r.SalaryType.Normalize()
	validateModelFields(&errs, r.ModelName, r.SalaryType, r.BaseSalary, r.DeductionPerDay,
		r.OvertimeBonusPerHour, r.WorkHoursPerDay, r.OvertimeThresholdHours)

	return errs.Err()
}

func validateModelFields(errs *validator.ValidationErrors, name string, salaryType SalaryType,
	base, deduction, overtime decimal.Decimal, workHours, threshold *decimal.Decimal) {
	if validator.IsEmpty(name) {
		errs.Add("model_name", "model_name is required")
	} else if len(name) > 255 {
		errs.Add("model_name", "model_name must not exceed 255 characters")
	}
	if !salaryType.IsValid() {
		errs.Add("salary_type", ErrInvalidSalaryType.Error())
	}
	if base.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	if deduction.IsNegative() {
		errs.Add("deduction_per_day", "deduction_per_day must not be negative")
	}
	if overtime.IsNegative() {
		errs.Add("overtime_bonus_per_hour", "overtime_bonus_per_hour must not be negative")
	}
	if workHours != nil && !workHours.IsPositive() {
		errs.Add("work_hours_per_day", "work_hours_per_day must be greater than 0")
	}
	if threshold != nil && threshold.IsNegative() {
		errs.Add("overtime_threshold_hours", "overtime_threshold_hours must not be negative")
	}
}

type SalaryModelResponse struct {
	ID                     string           `json:"id"`
	ModelName              string           `json:"model_name"`
	SalaryType             SalaryType       `json:"salary_type"`
	BaseSalary             decimal.Decimal  `json:"base_salary"`
	DeductionPerDay        decimal.Decimal  `json:"deduction_per_day"`
	OvertimeBonusPerHour   decimal.Decimal  `json:"overtime_bonus_per_hour"`
	WorkHoursPerDay        decimal.Decimal  `json:"work_hours_per_day"`
	OvertimeThresholdHours *decimal.Decimal `json:"overtime_threshold_hours"`
	EmployeeCount          int              `json:"employee_count"`
	CreatedAt              string           `json:"created_at"`
	UpdatedAt              string           `json:"updated_at"`
}

func ToResponse(m SalaryModel) SalaryModelResponse {
	return SalaryModelResponse{
		ID:                     m.ID,
		ModelName:              m.ModelName,
		SalaryType:             m.SalaryType,
		BaseSalary:             m.BaseSalary,
		DeductionPerDay:        m.DeductionPerDay,
		OvertimeBonusPerHour:   m.OvertimeBonusPerHour,
		WorkHoursPerDay:        m.WorkHoursPerDay,
		OvertimeThresholdHours: m.OvertimeThresholdHours,
		EmployeeCount:          m.EmployeeCount,
		CreatedAt:              m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              m.UpdatedAt.Format(time.RFC3339),
	}
}
