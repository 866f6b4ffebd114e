package employee

import (
	"strings"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

type EmployeeFilter struct {
	Search *string `json:"search,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Search != nil {
		s := strings.TrimSpace(*f.Search)
		if s == "" {
			f.Search = nil
		} else {
			f.Search = &s
		}
	}
}

// UpdateEmployeeRequest replaces the editable profile fields. A nil
// SalaryModelID or an empty one unassigns the salary model.
type UpdateEmployeeRequest struct {
	ID                string  `json:"-"`
	AdminID           string  `json:"-"`
	FullName          string  `json:"full_name"`
	Position          *string `json:"position"`
	PhoneNumber       *string `json:"phone_number"`
	SalaryModelID     *string `json:"salary_model_id"`
	BankName          *string `json:"bank_name"`
	BankAccountNumber *string `json:"bank_account_number"`
	BankAccountHolder *string `json:"bank_account_holder"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "full_name is required")
	} else if len(r.FullName) > 255 {
		errs.Add("full_name", "full_name must not exceed 255 characters")
	}

	if r.PhoneNumber != nil && !validator.IsEmpty(*r.PhoneNumber) && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs.Add("phone_number", ErrInvalidPhoneNumber.Error())
	}

	if r.SalaryModelID != nil && *r.SalaryModelID != "" && !validator.IsValidUUID(*r.SalaryModelID) {
		errs.Add("salary_model_id", "salary_model_id must be a valid UUID")
	}

	if r.BankAccountNumber != nil && !validator.IsEmpty(*r.BankAccountNumber) && !validator.IsNumeric(*r.BankAccountNumber) {
		errs.Add("bank_account_number", "bank_account_number must contain digits only")
	}

	return errs.Err()
}

type EmployeeResponse struct {
	ID                string  `json:"id"`
	FullName          string  `json:"full_name"`
	Email             string  `json:"email"`
	Position          *string `json:"position"`
	PhoneNumber       *string `json:"phone_number"`
	SalaryModelID     *string `json:"salary_model_id"`
	SalaryModelName   *string `json:"salary_model_name"`
	BankName          *string `json:"bank_name"`
	BankAccountNumber *string `json:"bank_account_number"`
	BankAccountHolder *string `json:"bank_account_holder"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

// ToResponse maps the entity to its API shape.
func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.ID,
		FullName:          e.FullName,
		Email:             e.Email,
		Position:          e.Position,
		PhoneNumber:       e.PhoneNumber,
		SalaryModelID:     e.SalaryModelID,
		SalaryModelName:   e.SalaryModelName,
		BankName:          e.BankName,
		BankAccountNumber: e.BankAccountNumber,
		BankAccountHolder: e.BankAccountHolder,
		CreatedAt:         e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:         e.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
