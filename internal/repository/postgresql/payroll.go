package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipSelect = `
	SELECT ps.id, ps.employee_id, ps.admin_id, ps.period_start_date, ps.period_end_date,
		   ps.salary_type, ps.final_salary, ps.calculation_details, ps.generated_at,
		   ps.created_at, ps.updated_at, e.full_name, e.position
	FROM payslips ps
	JOIN employees e ON e.id = ps.employee_id`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	var detailsBytes []byte
	var name string
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.AdminID, &p.PeriodStart, &p.PeriodEnd,
		&p.SalaryType, &p.FinalSalary, &detailsBytes, &p.GeneratedAt,
		&p.CreatedAt, &p.UpdatedAt, &name, &p.EmployeePosition,
	)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if err := json.Unmarshal(detailsBytes, &p.Details); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to decode calculation details: %w", err)
	}
	p.EmployeeName = &name
	return p, nil
}

func collectPayslips(rows pgx.Rows) ([]payroll.Payslip, error) {
	defer rows.Close()

	var out []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert implements payroll.PayslipRepository. The (employee_id,
// period_start_date) key keeps one snapshot per employee and period; a rerun
// overwrites it in place and keeps the original id.
func (r *payslipRepository) Upsert(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to generate id: %w", err)
	}
	detailsJSON, err := json.Marshal(p.Details)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to encode calculation details: %w", err)
	}

	query := `
		INSERT INTO payslips (
			id, employee_id, admin_id, period_start_date, period_end_date,
			salary_type, final_salary, calculation_details, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, period_start_date) DO UPDATE SET
			period_end_date = EXCLUDED.period_end_date,
			salary_type = EXCLUDED.salary_type,
			final_salary = EXCLUDED.final_salary,
			calculation_details = EXCLUDED.calculation_details,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id.String(),
		p.EmployeeID,
		p.AdminID,
		dateOnly(p.PeriodStart),
		dateOnly(p.PeriodEnd),
		p.SalaryType,
		p.FinalSalary,
		detailsJSON,
		p.GeneratedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to upsert payslip: %w", err)
	}

	return p, nil
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepository) GetByID(ctx context.Context, id string, adminID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayslip(q.QueryRow(ctx, payslipSelect+` WHERE ps.id = $1 AND ps.admin_id = $2`, id, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return p, nil
}

// GetByIDForEmployee implements payroll.PayslipRepository.
func (r *payslipRepository) GetByIDForEmployee(ctx context.Context, id string, employeeID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayslip(q.QueryRow(ctx, payslipSelect+` WHERE ps.id = $1 AND ps.employee_id = $2`, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return p, nil
}

// ListByPeriod implements payroll.PayslipRepository.
func (r *payslipRepository) ListByPeriod(ctx context.Context, adminID string, periodStart time.Time) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, payslipSelect+`
		WHERE ps.admin_id = $1 AND ps.period_start_date = $2
		ORDER BY e.full_name ASC`, adminID, dateOnly(periodStart))
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return collectPayslips(rows)
}

// ListByEmployee implements payroll.PayslipRepository.
func (r *payslipRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, payslipSelect+`
		WHERE ps.employee_id = $1
		ORDER BY ps.period_start_date DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return collectPayslips(rows)
}

// dateOnly formats t as a DATE literal in its own location, so a period
// boundary at local midnight is stored as that local date.
func dateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}
