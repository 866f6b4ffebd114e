package attendance

import (
	"time"
)

// Attendance is one clock-in/clock-out session. A nil CheckOutTime marks the
// record as open.
type Attendance struct {
	ID                string
	EmployeeID        string
	AdminID           string
	CheckInTime       time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName     *string
	EmployeePosition *string
}

// IsOpen reports whether the employee has not clocked out yet.
func (a Attendance) IsOpen() bool {
	return a.CheckOutTime == nil
}

// WorkedMinutes returns the whole minutes between check-in and check-out.
// Open records count as zero.
func (a Attendance) WorkedMinutes() int64 {
	if a.CheckOutTime == nil || a.CheckOutTime.Before(a.CheckInTime) {
		return 0
	}
	return int64(a.CheckOutTime.Sub(a.CheckInTime) / time.Minute)
}

// State is the clock state of an employee for a day.
type State string

const (
	StateNoRecord State = "no_record"
	StateOpen     State = "open"
	StateClosed   State = "closed"
)

// Status is the result of a status query. RecordID is empty for StateNoRecord.
type Status struct {
	State    State
	RecordID string
	Record   *Attendance
}

// ClockKind selects the transition requested through ClockAction.
type ClockKind string

const (
	ClockIn  ClockKind = "in"
	ClockOut ClockKind = "out"
)

// Location is a device position reported by the client.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Office is the geofence reference an admin's employees clock against.
type Office struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}
