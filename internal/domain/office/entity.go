package office

import "time"

// Office is the geofence reference point for an admin's employees.
// IsDefault marks the configured fallback returned when none is stored.
type Office struct {
	AdminID      string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	UpdatedAt    time.Time
	IsDefault    bool
}
