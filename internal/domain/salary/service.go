package salary

import "context"

type SalaryModelService interface {
	CreateSalaryModel(ctx context.Context, req CreateSalaryModelRequest) (SalaryModelResponse, error)
	ListSalaryModels(ctx context.Context, adminID string) ([]SalaryModelResponse, error)
	GetSalaryModel(ctx context.Context, id string, adminID string) (SalaryModelResponse, error)
	UpdateSalaryModel(ctx context.Context, req UpdateSalaryModelRequest) (SalaryModelResponse, error)
	DeleteSalaryModel(ctx context.Context, id string, adminID string) error
}
