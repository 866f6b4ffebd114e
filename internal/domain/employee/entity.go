package employee

import (
	"time"
)

// Employee belongs to exactly one admin. Its ID is the ID of the user account
// the employee signs in with.
type Employee struct {
	ID                string
	AdminID           string
	FullName          string
	Email             string
	Position          *string
	PhoneNumber       *string
	SalaryModelID     *string
	BankName          *string
	BankAccountNumber *string
	BankAccountHolder *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Join
	SalaryModelName *string
}

// HasSalaryModel reports whether a salary model is assigned.
func (e Employee) HasSalaryModel() bool {
	return e.SalaryModelID != nil && *e.SalaryModelID != ""
}
