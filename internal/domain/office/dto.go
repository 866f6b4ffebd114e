package office

import (
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/geofence"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

type UpsertOfficeRequest struct {
	AdminID      string  `json:"-"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

func (r *UpsertOfficeRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}
	if !geofence.ValidCoordinate(r.Latitude, r.Longitude) {
		errs.Add("latitude", "latitude must be between -90 and 90 and longitude between -180 and 180")
	}
	if r.RadiusMeters <= 0 {
		errs.Add("radius_meters", "radius_meters must be greater than 0")
	} else if r.RadiusMeters > 10000 {
		errs.Add("radius_meters", "radius_meters must not exceed 10000")
	}

	return errs.Err()
}

type OfficeResponse struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	IsDefault    bool    `json:"is_default"`
	UpdatedAt    *string `json:"updated_at,omitempty"`
}

func ToResponse(o Office) OfficeResponse {
	resp := OfficeResponse{
		Name:         o.Name,
		Latitude:     o.Latitude,
		Longitude:    o.Longitude,
		RadiusMeters: o.RadiusMeters,
		IsDefault:    o.IsDefault,
	}
	if !o.UpdatedAt.IsZero() {
		updated := o.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updated
	}
	return resp
}
