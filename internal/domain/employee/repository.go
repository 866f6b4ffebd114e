package employee

import "context"

// EmployeeRepository scopes every read and write by adminID.
type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string, adminID string) (Employee, error)
	ListByAdmin(ctx context.Context, filter EmployeeFilter, adminID string) ([]Employee, int64, error)
	// ListWithSalaryModel returns every employee of the admin that has a salary model assigned.
	ListWithSalaryModel(ctx context.Context, adminID string) ([]Employee, error)
	CountByAdmin(ctx context.Context, adminID string) (int64, error)
	Update(ctx context.Context, employee Employee) error
}
