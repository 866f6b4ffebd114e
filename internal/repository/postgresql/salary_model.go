package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryModelRepository struct {
	db *database.DB
}

func NewSalaryModelRepository(db *database.DB) salary.SalaryModelRepository {
	return &salaryModelRepository{db: db}
}

const salaryModelSelect = `
	SELECT sm.id, sm.admin_id, sm.model_name, sm.salary_type, sm.base_salary,
		   sm.deduction_per_day, sm.overtime_bonus_per_hour, sm.work_hours_per_day,
		   sm.overtime_threshold_hours, sm.created_at, sm.updated_at,
		   (SELECT COUNT(*) FROM employees e WHERE e.salary_model_id = sm.id) AS employee_count
	FROM salary_models sm`

func scanSalaryModel(row pgx.Row) (salary.SalaryModel, error) {
	var m salary.SalaryModel
	err := row.Scan(
		&m.ID, &m.AdminID, &m.ModelName, &m.SalaryType, &m.BaseSalary,
		&m.DeductionPerDay, &m.OvertimeBonusPerHour, &m.WorkHoursPerDay,
		&m.OvertimeThresholdHours, &m.CreatedAt, &m.UpdatedAt,
		&m.EmployeeCount,
	)
	return m, err
}

// Create implements salary.SalaryModelRepository.
func (r *salaryModelRepository) Create(ctx context.Context, m salary.SalaryModel) (salary.SalaryModel, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return salary.SalaryModel{}, fmt.Errorf("failed to generate id: %w", err)
	}
	m.ID = id.String()

	query := `
		INSERT INTO salary_models (
			id, admin_id, model_name, salary_type, base_salary, deduction_per_day,
			overtime_bonus_per_hour, work_hours_per_day, overtime_threshold_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		m.ID, m.AdminID, m.ModelName, m.SalaryType, m.BaseSalary, m.DeductionPerDay,
		m.OvertimeBonusPerHour, m.WorkHoursPerDay, m.OvertimeThresholdHours,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return salary.SalaryModel{}, fmt.Errorf("failed to create salary model: %w", err)
	}
	return m, nil
}

// GetByID implements salary.SalaryModelRepository.
func (r *salaryModelRepository) GetByID(ctx context.Context, id string, adminID string) (salary.SalaryModel, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanSalaryModel(q.QueryRow(ctx, salaryModelSelect+` WHERE sm.id = $1 AND sm.admin_id = $2`, id, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.SalaryModel{}, salary.ErrSalaryModelNotFound
		}
		return salary.SalaryModel{}, fmt.Errorf("failed to get salary model: %w", err)
	}
	return m, nil
}

// List implements salary.SalaryModelRepository.
func (r *salaryModelRepository) List(ctx context.Context, adminID string) ([]salary.SalaryModel, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, salaryModelSelect+` WHERE sm.admin_id = $1 ORDER BY sm.model_name ASC`, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary models: %w", err)
	}
	defer rows.Close()

	var models []salary.SalaryModel
	for rows.Next() {
		m, err := scanSalaryModel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

// Update implements salary.SalaryModelRepository.
func (r *salaryModelRepository) Update(ctx context.Context, m salary.SalaryModel) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_models SET
			model_name = $1,
			salary_type = $2,
			base_salary = $3,
			deduction_per_day = $4,
			overtime_bonus_per_hour = $5,
			work_hours_per_day = $6,
			overtime_threshold_hours = $7,
			updated_at = NOW()
		WHERE id = $8 AND admin_id = $9
	`
	tag, err := q.Exec(ctx, query,
		m.ModelName, m.SalaryType, m.BaseSalary, m.DeductionPerDay,
		m.OvertimeBonusPerHour, m.WorkHoursPerDay, m.OvertimeThresholdHours,
		m.ID, m.AdminID,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary model: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryModelNotFound
	}
	return nil
}

// Delete implements salary.SalaryModelRepository. The foreign key clears
// employees.salary_model_id.
func (r *salaryModelRepository) Delete(ctx context.Context, id string, adminID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_models WHERE id = $1 AND admin_id = $2`, id, adminID)
	if err != nil {
		return fmt.Errorf("failed to delete salary model: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryModelNotFound
	}
	return nil
}
