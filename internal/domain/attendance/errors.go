package attendance

import "errors"

// Attendance domain errors
var (
	// Clock flow errors
	ErrNoLocationFix     = errors.New("device location is required to clock in or out")
	ErrOutsideGeofence   = errors.New("you are outside the allowed office radius")
	ErrAlreadyClockedIn  = errors.New("you already have an open attendance record")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrInvalidClockKind  = errors.New("clock kind must be 'in' or 'out'")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrCheckOutBeforeIn   = errors.New("check_out_time must not be before check_in_time")
)
