package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

// ClockInRequest carries the device location. Now is stamped by the caller
// from the server clock and never read from the request body.
type ClockInRequest struct {
	EmployeeID string    `json:"-"`
	AdminID    string    `json:"-"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	Now        time.Time `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	validateCoordinates(&errs, "", r.Latitude, r.Longitude)

	return errs.Err()
}

// Location returns the reported position, or ErrNoLocationFix when either
// coordinate is missing.
func (r *ClockInRequest) Location() (Location, error) {
	return locationOf(r.Latitude, r.Longitude)
}

type ClockOutRequest struct {
	EmployeeID   string    `json:"-"`
	AdminID      string    `json:"-"`
	AttendanceID string    `json:"attendance_id,omitempty"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Now          time.Time `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.AttendanceID != "" && !validator.IsValidUUID(r.AttendanceID) {
		errs.Add("attendance_id", "attendance_id must be a valid UUID")
	}
	validateCoordinates(&errs, "", r.Latitude, r.Longitude)

	return errs.Err()
}

func (r *ClockOutRequest) Location() (Location, error) {
	return locationOf(r.Latitude, r.Longitude)
}

// ClockActionRequest is the single clock entry point used by the mobile client.
type ClockActionRequest struct {
	EmployeeID   string    `json:"-"`
	AdminID      string    `json:"-"`
	Kind         ClockKind `json:"kind"`
	AttendanceID string    `json:"attendance_id,omitempty"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Now          time.Time `json:"-"`
}

func (r *ClockActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	r.Kind = ClockKind(strings.ToLower(strings.TrimSpace(string(r.Kind))))
	if r.Kind != ClockIn && r.Kind != ClockOut {
		errs.Add("kind", ErrInvalidClockKind.Error())
	}
	if r.AttendanceID != "" && !validator.IsValidUUID(r.AttendanceID) {
		errs.Add("attendance_id", "attendance_id must be a valid UUID")
	}
	validateCoordinates(&errs, "", r.Latitude, r.Longitude)

	return errs.Err()
}

func validateCoordinates(errs *validator.ValidationErrors, prefix string, lat, lon *float64) {
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs.Add(prefix+"latitude", prefix+"latitude must be between -90 and 90")
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		errs.Add(prefix+"longitude", prefix+"longitude must be between -180 and 180")
	}
}

func locationOf(lat, lon *float64) (Location, error) {
	if lat == nil || lon == nil {
		return Location{}, ErrNoLocationFix
	}
	return Location{Latitude: *lat, Longitude: *lon}, nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	EmployeePosition  *string  `json:"employee_position,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       string   `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	WorkedMinutes     int64    `json:"worked_minutes"`
	Status            string   `json:"status"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// NewAttendanceResponse renders timestamps in loc so dates match the
// organization's calendar.
func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		EmployeePosition:  a.EmployeePosition,
		Date:              a.CheckInTime.In(loc).Format("2006-01-02"),
		CheckInTime:       a.CheckInTime.In(loc).Format(time.RFC3339),
		CheckInLatitude:   a.CheckInLatitude,
		CheckInLongitude:  a.CheckInLongitude,
		CheckOutLatitude:  a.CheckOutLatitude,
		CheckOutLongitude: a.CheckOutLongitude,
		WorkedMinutes:     a.WorkedMinutes(),
		Status:            string(StateClosed),
		CreatedAt:         a.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:         a.UpdatedAt.In(loc).Format(time.RFC3339),
	}
	if a.CheckOutTime != nil {
		out := a.CheckOutTime.In(loc).Format(time.RFC3339)
		resp.CheckOutTime = &out
	} else {
		resp.Status = string(StateOpen)
	}
	return resp
}

// ========================================
// STATUS DTOs
// ========================================

type StatusResponse struct {
	State        State               `json:"state"`
	AttendanceID string              `json:"attendance_id,omitempty"`
	Attendance   *AttendanceResponse `json:"attendance,omitempty"`
	CanClockIn   bool                `json:"can_clock_in"`
	CanClockOut  bool                `json:"can_clock_out"`
	Message      string              `json:"message"`
}

// ========================================
// LIST DTOs
// ========================================

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	OpenOnly   bool    `json:"open_only,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc

	// Resolved check-in window, set by the service from the dates above.
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	validateDateRange(&errs, f.StartDate, f.EndDate)

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	} else {
		f.SortOrder = "desc"
	}

	return errs.Err()
}

// Resolve turns the date strings into a half-open check-in window in loc.
// Call after Validate.
func (f *AttendanceFilter) Resolve(loc *time.Location) {
	if f.StartDate != nil && *f.StartDate != "" {
		d, _ := time.ParseInLocation("2006-01-02", *f.StartDate, loc)
		f.From = &d
	}
	if f.EndDate != nil && *f.EndDate != "" {
		d, _ := time.ParseInLocation("2006-01-02", *f.EndDate, loc)
		d = d.AddDate(0, 0, 1)
		f.To = &d
	}
}

type MyAttendanceFilter struct {
	EmployeeID string  `json:"-"`
	AdminID    string  `json:"-"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ToFilter scopes a self-service query to the caller.
func (f MyAttendanceFilter) ToFilter() AttendanceFilter {
	employeeID := f.EmployeeID
	return AttendanceFilter{
		EmployeeID: &employeeID,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Page:       f.Page,
		Limit:      f.Limit,
	}
}

func validateDateRange(errs *validator.ValidationErrors, start, end *string) {
	var from, to time.Time
	var okFrom, okTo bool
	if start != nil && *start != "" {
		if from, okFrom = validator.IsValidDate(*start); !okFrom {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if end != nil && *end != "" {
		if to, okTo = validator.IsValidDate(*end); !okTo {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if okFrom && okTo && to.Before(from) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// ADMIN CORRECTION DTOs
// ========================================

// CreateAttendanceRequest lets an admin record a session the employee missed.
// Timestamps are RFC 3339 and stored as given.
type CreateAttendanceRequest struct {
	AdminID           string   `json:"-"`
	EmployeeID        string   `json:"employee_id"`
	CheckInTime       string   `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	checkIn, okIn := validator.IsValidDateTime(r.CheckInTime)
	if !okIn {
		errs.Add("check_in_time", "check_in_time must be an RFC 3339 timestamp")
	}
	if r.CheckOutTime != nil && *r.CheckOutTime != "" {
		checkOut, okOut := validator.IsValidDateTime(*r.CheckOutTime)
		if !okOut {
			errs.Add("check_out_time", "check_out_time must be an RFC 3339 timestamp")
		} else if okIn && checkOut.Before(checkIn) {
			errs.Add("check_out_time", ErrCheckOutBeforeIn.Error())
		}
	}

	validateCoordinates(&errs, "check_in_", r.CheckInLatitude, r.CheckInLongitude)
	validateCoordinates(&errs, "check_out_", r.CheckOutLatitude, r.CheckOutLongitude)

	return errs.Err()
}

// UpdateAttendanceRequest edits a record in place. Nil fields are left as is;
// ClearCheckOut reopens the record.
type UpdateAttendanceRequest struct {
	ID                string   `json:"-"`
	AdminID           string   `json:"-"`
	CheckInTime       *string  `json:"check_in_time,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	ClearCheckOut     bool     `json:"clear_check_out,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.CheckInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInTime); !ok {
			errs.Add("check_in_time", "check_in_time must be an RFC 3339 timestamp")
		}
	}
	if r.CheckOutTime != nil {
		if r.ClearCheckOut {
			errs.Add("check_out_time", "check_out_time cannot be combined with clear_check_out")
		} else if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs.Add("check_out_time", "check_out_time must be an RFC 3339 timestamp")
		}
	}

	validateCoordinates(&errs, "check_in_", r.CheckInLatitude, r.CheckInLongitude)
	validateCoordinates(&errs, "check_out_", r.CheckOutLatitude, r.CheckOutLongitude)

	return errs.Err()
}

// Apply merges the request into an existing record.
func (r *UpdateAttendanceRequest) Apply(a *Attendance) error {
	if r.CheckInTime != nil {
		t, ok := validator.IsValidDateTime(*r.CheckInTime)
		if !ok {
			return fmt.Errorf("invalid check_in_time %q", *r.CheckInTime)
		}
		a.CheckInTime = t
	}
	if r.ClearCheckOut {
		a.CheckOutTime = nil
	} else if r.CheckOutTime != nil {
		t, ok := validator.IsValidDateTime(*r.CheckOutTime)
		if !ok {
			return fmt.Errorf("invalid check_out_time %q", *r.CheckOutTime)
		}
		a.CheckOutTime = &t
	}
	if r.CheckInLatitude != nil {
		a.CheckInLatitude = r.CheckInLatitude
	}
	if r.CheckInLongitude != nil {
		a.CheckInLongitude = r.CheckInLongitude
	}
	if r.CheckOutLatitude != nil {
		a.CheckOutLatitude = r.CheckOutLatitude
	}
	if r.CheckOutLongitude != nil {
		a.CheckOutLongitude = r.CheckOutLongitude
	}
	if a.CheckOutTime != nil && a.CheckOutTime.Before(a.CheckInTime) {
		return ErrCheckOutBeforeIn
	}
	return nil
}
