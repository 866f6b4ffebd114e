package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	salaryRepo   salary.SalaryModelRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	salaryRepo salary.SalaryModelRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string, adminID string) (employee.EmployeeResponse, error) {
	emp, err := s.get(ctx, id, adminID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.get(ctx, req.ID, req.AdminID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// The salary model must belong to the same admin
	var salaryModelID *string
	if req.SalaryModelID != nil && *req.SalaryModelID != "" {
		if _, err := s.salaryRepo.GetByID(ctx, *req.SalaryModelID, req.AdminID); err != nil {
			if errors.Is(err, salary.ErrSalaryModelNotFound) {
				return employee.EmployeeResponse{}, err
			}
			return employee.EmployeeResponse{}, fmt.Errorf("failed to get salary model: %w", err)
		}
		salaryModelID = req.SalaryModelID
	}

	emp.FullName = strings.TrimSpace(req.FullName)
	emp.Position = trimmedOrNil(req.Position)
	emp.PhoneNumber = trimmedOrNil(req.PhoneNumber)
	emp.SalaryModelID = salaryModelID
	emp.BankName = trimmedOrNil(req.BankName)
	emp.BankAccountNumber = trimmedOrNil(req.BankAccountNumber)
	emp.BankAccountHolder = trimmedOrNil(req.BankAccountHolder)

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	slog.Info("Employee updated", "admin_id", req.AdminID, "employee_id", emp.ID, "salary_model_id", salaryModelID)

	// Reload for the joined salary model name
	return s.GetEmployee(ctx, emp.ID, req.AdminID)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter, adminID string) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.ListByAdmin(ctx, filter, adminID)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

func (s *EmployeeServiceImpl) get(ctx context.Context, id string, adminID string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp, err := s.employeeRepo.GetByID(ctx, id, adminID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
