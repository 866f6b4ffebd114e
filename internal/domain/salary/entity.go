package salary

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SalaryType selects the pay formula applied by the evaluator.
type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "monthly"
	SalaryTypeHourly  SalaryType = "hourly"
	SalaryTypeDaily   SalaryType = "daily"
)

var legacySalaryTypes = map[string]SalaryType{
	"bulanan": SalaryTypeMonthly,
	"perjam":  SalaryTypeHourly,
	"harian":  SalaryTypeDaily,
}

// Normalize maps legacy and mixed-case names onto the canonical types. Unknown
// names are returned unchanged so the evaluator can reject them.
func (t SalaryType) Normalize() SalaryType {
	s := strings.ToLower(strings.TrimSpace(string(t)))
	if canonical, ok := legacySalaryTypes[s]; ok {
		return canonical
	}
	return SalaryType(s)
}

func (t SalaryType) IsValid() bool {
	switch t.Normalize() {
	case SalaryTypeMonthly, SalaryTypeHourly, SalaryTypeDaily:
		return true
	}
	return false
}

// DefaultWorkHoursPerDay is used when a monthly model leaves the field unset.
var DefaultWorkHoursPerDay = decimal.NewFromInt(8)

// SalaryModel is a pay scheme an admin assigns to employees. Fields that do not
// apply to the model's type are kept but ignored.
type SalaryModel struct {
	ID                     string
	AdminID                string
	ModelName              string
	SalaryType             SalaryType
	BaseSalary             decimal.Decimal
	DeductionPerDay        decimal.Decimal
	OvertimeBonusPerHour   decimal.Decimal
	WorkHoursPerDay        decimal.Decimal
	OvertimeThresholdHours *decimal.Decimal
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// DTO
	EmployeeCount int
}
