package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// CountEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountEmployees(ctx context.Context, adminID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE admin_id = $1`, adminID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// CountPresent implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountPresent(ctx context.Context, adminID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id)
		FROM attendance_records
		WHERE admin_id = $1 AND check_in_time >= $2 AND check_in_time < $3
	`
	var count int64
	if err := q.QueryRow(ctx, query, adminID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count present employees: %w", err)
	}
	return count, nil
}

// SumWorkedMinutes implements dashboard.DashboardRepository.
func (r *dashboardRepository) SumWorkedMinutes(ctx context.Context, adminID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(FLOOR(EXTRACT(EPOCH FROM (check_out_time - check_in_time)) / 60)), 0)::BIGINT
		FROM attendance_records
		WHERE admin_id = $1 AND check_in_time >= $2 AND check_in_time < $3
		  AND check_out_time IS NOT NULL
	`
	var minutes int64
	if err := q.QueryRow(ctx, query, adminID, from, to).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("failed to sum worked minutes: %w", err)
	}
	return minutes, nil
}

// DailyPresence implements dashboard.DashboardRepository.
func (r *dashboardRepository) DailyPresence(ctx context.Context, adminID string, from, to time.Time, timezone string) ([]dashboard.DailyPresence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT (check_in_time AT TIME ZONE $4)::date AS day, COUNT(DISTINCT employee_id)
		FROM attendance_records
		WHERE admin_id = $1 AND check_in_time >= $2 AND check_in_time < $3
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := q.Query(ctx, query, adminID, from, to, timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily presence: %w", err)
	}
	defer rows.Close()

	var out []dashboard.DailyPresence
	for rows.Next() {
		var d dashboard.DailyPresence
		if err := rows.Scan(&d.Date, &d.Present); err != nil {
			return nil, fmt.Errorf("failed to scan daily presence: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// LatestActivities implements dashboard.DashboardRepository.
func (r *dashboardRepository) LatestActivities(ctx context.Context, adminID string, from, to time.Time, limit int) ([]dashboard.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, full_name, kind, at FROM (
			SELECT a.employee_id, e.full_name, 'in' AS kind, a.check_in_time AS at
			FROM attendance_records a
			JOIN employees e ON e.id = a.employee_id
			WHERE a.admin_id = $1 AND a.check_in_time >= $2 AND a.check_in_time < $3
			UNION ALL
			SELECT a.employee_id, e.full_name, 'out' AS kind, a.check_out_time AS at
			FROM attendance_records a
			JOIN employees e ON e.id = a.employee_id
			WHERE a.admin_id = $1 AND a.check_out_time >= $2 AND a.check_out_time < $3
		) events
		ORDER BY at DESC
		LIMIT $4
	`
	rows, err := q.Query(ctx, query, adminID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest activities: %w", err)
	}
	defer rows.Close()

	var out []dashboard.Activity
	for rows.Next() {
		var a dashboard.Activity
		if err := rows.Scan(&a.EmployeeID, &a.EmployeeName, &a.Kind, &a.At); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
