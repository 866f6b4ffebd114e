package salary

import "errors"

var (
	// Evaluation errors
	ErrNoSalaryModel          = errors.New("employee has no salary model assigned")
	ErrUnsupportedSalaryModel = errors.New("salary model type is not supported")

	ErrSalaryModelNotFound = errors.New("salary model not found")
	ErrInvalidSalaryType   = errors.New("salary_type must be one of: monthly, hourly, daily")
)
