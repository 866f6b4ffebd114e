package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/office"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeRepository struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.OfficeRepository {
	return &officeRepository{db: db}
}

// Get implements office.OfficeRepository.
func (r *officeRepository) Get(ctx context.Context, adminID string) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT admin_id, name, latitude, longitude, radius_meters, updated_at
		FROM offices
		WHERE admin_id = $1
	`
	var o office.Office
	err := q.QueryRow(ctx, query, adminID).Scan(&o.AdminID, &o.Name, &o.Latitude, &o.Longitude, &o.RadiusMeters, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, fmt.Errorf("failed to get office: %w", err)
	}
	return o, nil
}

// Upsert implements office.OfficeRepository.
func (r *officeRepository) Upsert(ctx context.Context, o office.Office) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO offices (admin_id, name, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (admin_id) DO UPDATE SET
			name = EXCLUDED.name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_meters = EXCLUDED.radius_meters,
			updated_at = NOW()
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query, o.AdminID, o.Name, o.Latitude, o.Longitude, o.RadiusMeters).Scan(&o.UpdatedAt)
	if err != nil {
		return office.Office{}, fmt.Errorf("failed to save office: %w", err)
	}
	o.IsDefault = false
	return o, nil
}
