package office

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/config"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/office"
)

const defaultOfficeName = "Kantor Pusat"

// OfficeServiceImpl serves the admin office settings and, as an
// attendance.OfficeProvider, the geofence used by clock actions.
type OfficeServiceImpl struct {
	officeRepo office.OfficeRepository
	fallback   config.OfficeConfig
}

func NewOfficeService(officeRepo office.OfficeRepository, fallback config.OfficeConfig) *OfficeServiceImpl {
	return &OfficeServiceImpl{officeRepo: officeRepo, fallback: fallback}
}

var (
	_ office.OfficeService      = (*OfficeServiceImpl)(nil)
	_ attendance.OfficeProvider = (*OfficeServiceImpl)(nil)
)

// resolve returns the stored office, or the configured default when the
// admin has not saved one.
func (s *OfficeServiceImpl) resolve(ctx context.Context, adminID string) (office.Office, error) {
	o, err := s.officeRepo.Get(ctx, adminID)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, office.ErrOfficeNotFound) {
		return office.Office{}, fmt.Errorf("failed to get office: %w", err)
	}
	return office.Office{
		AdminID:      adminID,
		Name:         defaultOfficeName,
		Latitude:     s.fallback.Latitude,
		Longitude:    s.fallback.Longitude,
		RadiusMeters: s.fallback.RadiusMeters,
		IsDefault:    true,
	}, nil
}

// GetOffice implements office.OfficeService.
func (s *OfficeServiceImpl) GetOffice(ctx context.Context, adminID string) (office.OfficeResponse, error) {
	o, err := s.resolve(ctx, adminID)
	if err != nil {
		return office.OfficeResponse{}, err
	}
	return office.ToResponse(o), nil
}

// UpsertOffice implements office.OfficeService.
func (s *OfficeServiceImpl) UpsertOffice(ctx context.Context, req office.UpsertOfficeRequest) (office.OfficeResponse, error) {
	if err := req.Validate(); err != nil {
		return office.OfficeResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultOfficeName
	}

	saved, err := s.officeRepo.Upsert(ctx, office.Office{
		AdminID:      req.AdminID,
		Name:         name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	})
	if err != nil {
		return office.OfficeResponse{}, fmt.Errorf("failed to save office: %w", err)
	}

	slog.Info("Office location updated",
		"admin_id", req.AdminID,
		"latitude", saved.Latitude,
		"longitude", saved.Longitude,
		"radius_meters", saved.RadiusMeters,
	)
	return office.ToResponse(saved), nil
}

// OfficeFor implements attendance.OfficeProvider.
func (s *OfficeServiceImpl) OfficeFor(ctx context.Context, adminID string) (attendance.Office, error) {
	o, err := s.resolve(ctx, adminID)
	if err != nil {
		return attendance.Office{}, err
	}
	return attendance.Office{
		Latitude:     o.Latitude,
		Longitude:    o.Longitude,
		RadiusMeters: o.RadiusMeters,
	}, nil
}
