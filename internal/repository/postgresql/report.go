package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// GetDailyAttendance implements report.ReportRepository.
func (r *reportRepository) GetDailyAttendance(ctx context.Context, adminID string, from, to time.Time, timezone string) ([]report.DailyAttendanceRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			e.full_name,
			e.position,
			(a.check_in_time AT TIME ZONE $4)::date AS work_date,
			MIN(a.check_in_time),
			MAX(a.check_out_time),
			COALESCE(SUM(FLOOR(EXTRACT(EPOCH FROM (a.check_out_time - a.check_in_time)) / 60))
				FILTER (WHERE a.check_out_time >= a.check_in_time), 0)::bigint,
			COUNT(a.id) FILTER (WHERE a.check_out_time IS NOT NULL),
			COUNT(a.id) FILTER (WHERE a.check_out_time IS NULL)
		FROM employees e
		LEFT JOIN attendance_records a
			ON a.employee_id = e.id
			AND a.check_in_time >= $2
			AND a.check_in_time < $3
		WHERE e.admin_id = $1
		GROUP BY e.id, e.full_name, e.position, work_date
		ORDER BY e.full_name, e.id, work_date NULLS FIRST
	`

	rows, err := q.Query(ctx, query, adminID, from, to, timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily attendance: %w", err)
	}
	defer rows.Close()

	var out []report.DailyAttendanceRow
	for rows.Next() {
		var row report.DailyAttendanceRow
		if err := rows.Scan(
			&row.EmployeeID,
			&row.EmployeeName,
			&row.Position,
			&row.Date,
			&row.FirstCheckIn,
			&row.LastCheckOut,
			&row.WorkedMinutes,
			&row.ClosedRecords,
			&row.OpenRecords,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily attendance: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily attendance: %w", err)
	}

	return out, nil
}

// GetPayrollSummary implements report.ReportRepository.
func (r *reportRepository) GetPayrollSummary(ctx context.Context, adminID string, periodStart time.Time) ([]report.PayrollSummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			salary_type,
			COUNT(*),
			COALESCE(SUM(final_salary), 0),
			COALESCE(SUM((calculation_details->>'deductions_applied')::numeric), 0),
			COALESCE(SUM((calculation_details->>'overtime_pay')::numeric), 0)
		FROM payslips
		WHERE admin_id = $1 AND period_start_date = $2
		GROUP BY salary_type
		ORDER BY salary_type
	`

	rows, err := q.Query(ctx, query, adminID, dateOnly(periodStart))
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll summary: %w", err)
	}
	defer rows.Close()

	var out []report.PayrollSummaryRow
	for rows.Next() {
		var row report.PayrollSummaryRow
		if err := rows.Scan(
			&row.SalaryType,
			&row.Payslips,
			&row.TotalFinalSalary,
			&row.TotalDeductions,
			&row.TotalOvertimePay,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll summary: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll summary: %w", err)
	}

	return out, nil
}
