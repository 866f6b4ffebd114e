package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Reads that take adminID never cross organizations.
type AttendanceRepository interface {
	// LockEmployee serializes clock transitions for one employee until the
	// surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error

	// Create inserts a record. A second open record for the same employee
	// fails with ErrAlreadyClockedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, adminID string) (Attendance, error)

	// GetOpenSession returns the employee's open record or ErrAttendanceNotFound.
	GetOpenSession(ctx context.Context, employeeID string) (Attendance, error)

	// GetLatestBetween returns the newest record with check-in in [from, to)
	// or ErrAttendanceNotFound.
	GetLatestBetween(ctx context.Context, employeeID string, from, to time.Time) (Attendance, error)

	Update(ctx context.Context, attendance Attendance) error
	Delete(ctx context.Context, id string, adminID string) error

	List(ctx context.Context, filter AttendanceFilter, adminID string) ([]Attendance, int64, error)

	// ListByEmployeeBetween returns every record with check-in in [from, to), oldest first.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// ListStaleOpenSessions returns open records checked in before the cutoff.
	ListStaleOpenSessions(ctx context.Context, checkedInBefore time.Time) ([]Attendance, error)
}

// OfficeProvider resolves the geofence for an admin.
type OfficeProvider interface {
	OfficeFor(ctx context.Context, adminID string) (Office, error)
}
