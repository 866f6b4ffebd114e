package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockAction dispatches to ClockIn or ClockOut by kind
	ClockAction(ctx context.Context, req ClockActionRequest) (AttendanceResponse, error)

	// ClockIn opens a record after geofence and rounding
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the open record after geofence and rounding
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// CurrentStatus tells the client which action it may offer
	CurrentStatus(ctx context.Context, employeeID string) (StatusResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter, adminID string) (ListAttendanceResponse, error)

	// CreateAttendance inserts a record directly (admin correction, no geofence or rounding)
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// UpdateAttendance edits timestamps directly (admin correction)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance removes a record (admin)
	DeleteAttendance(ctx context.Context, id string, adminID string) error
}
