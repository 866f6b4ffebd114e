package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to generate id: %w", err)
	}
	h.ID = id.String()

	query := `
		INSERT INTO holidays (id, admin_id, holiday_date, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = q.QueryRow(ctx, query, h.ID, h.AdminID, dateOnly(h.HolidayDate), h.Description).Scan(&h.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

// ListByYear implements holiday.HolidayRepository.
func (r *holidayRepository) ListByYear(ctx context.Context, adminID string, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, admin_id, holiday_date, description, created_at
		FROM holidays
		WHERE admin_id = $1 AND EXTRACT(YEAR FROM holiday_date) = $2
		ORDER BY holiday_date ASC
	`
	rows, err := q.Query(ctx, query, adminID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.AdminID, &h.HolidayDate, &h.Description, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// ListDatesBetween implements holiday.HolidayRepository. Dates come back at
// UTC midnight; callers compare them by calendar date.
func (r *holidayRepository) ListDatesBetween(ctx context.Context, adminID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT holiday_date
		FROM holidays
		WHERE admin_id = $1 AND holiday_date BETWEEN $2 AND $3
		ORDER BY holiday_date ASC
	`
	rows, err := q.Query(ctx, query, adminID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan holiday date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string, adminID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND admin_id = $2`, id, adminID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
