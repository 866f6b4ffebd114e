package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

type salaryModelServiceImpl struct {
	salaryRepo salary.SalaryModelRepository
}

func NewSalaryModelService(salaryRepo salary.SalaryModelRepository) salary.SalaryModelService {
	return &salaryModelServiceImpl{salaryRepo: salaryRepo}
}

// CreateSalaryModel implements salary.SalaryModelService.
func (s *salaryModelServiceImpl) CreateSalaryModel(ctx context.Context, req salary.CreateSalaryModelRequest) (salary.SalaryModelResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryModelResponse{}, err
	}

	created, err := s.salaryRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return salary.SalaryModelResponse{}, fmt.Errorf("failed to create salary model: %w", err)
	}

	slog.Info("Salary model created", "admin_id", req.AdminID, "salary_model_id", created.ID, "salary_type", created.SalaryType)
	return salary.ToResponse(created), nil
}

// ListSalaryModels implements salary.SalaryModelService.
func (s *salaryModelServiceImpl) ListSalaryModels(ctx context.Context, adminID string) ([]salary.SalaryModelResponse, error) {
	models, err := s.salaryRepo.List(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary models: %w", err)
	}

	responses := make([]salary.SalaryModelResponse, 0, len(models))
	for _, m := range models {
		responses = append(responses, salary.ToResponse(m))
	}
	return responses, nil
}

// GetSalaryModel implements salary.SalaryModelService.
func (s *salaryModelServiceImpl) GetSalaryModel(ctx context.Context, id string, adminID string) (salary.SalaryModelResponse, error) {
	m, err := s.get(ctx, id, adminID)
	if err != nil {
		return salary.SalaryModelResponse{}, err
	}
	return salary.ToResponse(m), nil
}

// UpdateSalaryModel implements salary.SalaryModelService.
func (s *salaryModelServiceImpl) UpdateSalaryModel(ctx context.Context, req salary.UpdateSalaryModelRequest) (salary.SalaryModelResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryModelResponse{}, err
	}

	existing, err := s.get(ctx, req.ID, req.AdminID)
	if err != nil {
		return salary.SalaryModelResponse{}, err
	}

	updated := req.ToEntity()
	updated.ID = existing.ID
	updated.AdminID = existing.AdminID
	updated.CreatedAt = existing.CreatedAt
	if req.WorkHoursPerDay == nil {
		updated.WorkHoursPerDay = existing.WorkHoursPerDay
	}

	if err := s.salaryRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, salary.ErrSalaryModelNotFound) {
			return salary.SalaryModelResponse{}, err
		}
		return salary.SalaryModelResponse{}, fmt.Errorf("failed to update salary model: %w", err)
	}

	return s.GetSalaryModel(ctx, req.ID, req.AdminID)
}

// DeleteSalaryModel implements salary.SalaryModelService. Employees that used
// the model are left without one and are skipped by payslip generation.
func (s *salaryModelServiceImpl) DeleteSalaryModel(ctx context.Context, id string, adminID string) error {
	if !validator.IsValidUUID(id) {
		return salary.ErrSalaryModelNotFound
	}
	if err := s.salaryRepo.Delete(ctx, id, adminID); err != nil {
		if errors.Is(err, salary.ErrSalaryModelNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete salary model: %w", err)
	}

	slog.Info("Salary model deleted", "admin_id", adminID, "salary_model_id", id)
	return nil
}

func (s *salaryModelServiceImpl) get(ctx context.Context, id string, adminID string) (salary.SalaryModel, error) {
	if !validator.IsValidUUID(id) {
		return salary.SalaryModel{}, salary.ErrSalaryModelNotFound
	}
	m, err := s.salaryRepo.GetByID(ctx, id, adminID)
	if err != nil {
		if errors.Is(err, salary.ErrSalaryModelNotFound) {
			return salary.SalaryModel{}, err
		}
		return salary.SalaryModel{}, fmt.Errorf("failed to get salary model: %w", err)
	}
	return m, nil
}
