package salary

import "context"

// SalaryModelRepository defines data access methods for salary models.
// Every method is scoped by adminID.
type SalaryModelRepository interface {
	Create(ctx context.Context, model SalaryModel) (SalaryModel, error)
	GetByID(ctx context.Context, id string, adminID string) (SalaryModel, error)
	List(ctx context.Context, adminID string) ([]SalaryModel, error)
	Update(ctx context.Context, model SalaryModel) error

	// Delete removes the model. Employees referencing it are left unassigned.
	Delete(ctx context.Context, id string, adminID string) error
}
