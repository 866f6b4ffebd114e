package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.admin_id, e.full_name, u.email, e.position, e.phone_number, e.salary_model_id,
		   e.bank_name, e.bank_account_number, e.bank_account_holder, e.created_at, e.updated_at,
		   sm.model_name
	FROM employees e
	JOIN users u ON u.id = e.id
	LEFT JOIN salary_models sm ON sm.id = e.salary_model_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.AdminID,
		&e.FullName,
		&e.Email,
		&e.Position,
		&e.PhoneNumber,
		&e.SalaryModelID,
		&e.BankName,
		&e.BankAccountNumber,
		&e.BankAccountHolder,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.SalaryModelName,
	)
	return e, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create implements employee.EmployeeRepository. The ID is the user ID.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, admin_id, full_name, position, phone_number, salary_model_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.AdminID,
		newEmployee.FullName,
		newEmployee.Position,
		newEmployee.PhoneNumber,
		newEmployee.SalaryModelID,
	).Scan(&newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, adminID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1 AND e.admin_id = $2`, id, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// ListByAdmin implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByAdmin(ctx context.Context, filter employee.EmployeeFilter, adminID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "e.admin_id = $1"
	args := []interface{}{adminID}
	argIdx := 2

	if filter.Search != nil {
		baseWhere += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR u.email ILIKE $%d OR e.position ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees e JOIN users u ON u.id = e.id WHERE ` + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY e.full_name ASC LIMIT $%d OFFSET $%d`,
		employeeSelect, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListWithSalaryModel implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListWithSalaryModel(ctx context.Context, adminID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, employeeSelect+`
		WHERE e.admin_id = $1 AND e.salary_model_id IS NOT NULL
		ORDER BY e.full_name ASC`, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return collectEmployees(rows)
}

// CountByAdmin implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByAdmin(ctx context.Context, adminID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE admin_id = $1`, adminID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			full_name = $1,
			position = $2,
			phone_number = $3,
			salary_model_id = $4,
			bank_name = $5,
			bank_account_number = $6,
			bank_account_holder = $7,
			updated_at = NOW()
		WHERE id = $8 AND admin_id = $9
	`
	tag, err := q.Exec(ctx, query,
		e.FullName,
		e.Position,
		e.PhoneNumber,
		e.SalaryModelID,
		e.BankName,
		e.BankAccountNumber,
		e.BankAccountHolder,
		e.ID,
		e.AdminID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
