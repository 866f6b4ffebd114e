package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/geofence"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/timeround"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/workday"
)

// Options tunes the state machine.
type Options struct {
	// Location is the organization timezone used for rounding and "today".
	Location *time.Location
	// AllowReentry lets an employee open a new session after closing today's.
	AllowReentry bool
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	offices      attendance.OfficeProvider
	events       sse.Publisher
	loc          *time.Location
	allowReentry bool
	clock        func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	offices attendance.OfficeProvider,
	events sse.Publisher,
	opts Options,
) attendance.AttendanceService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		offices:              offices,
		events:               events,
		loc:                  opts.Location,
		allowReentry:         opts.AllowReentry,
		clock:                opts.Clock,
	}
}

// ClockAction implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockAction(ctx context.Context, req attendance.ClockActionRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	switch req.Kind {
	case attendance.ClockIn:
		return a.ClockIn(ctx, attendance.ClockInRequest{
			EmployeeID: req.EmployeeID,
			AdminID:    req.AdminID,
			Latitude:   req.Latitude,
			Longitude:  req.Longitude,
			Now:        req.Now,
		})
	case attendance.ClockOut:
		return a.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID:   req.EmployeeID,
			AdminID:      req.AdminID,
			AttendanceID: req.AttendanceID,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			Now:          req.Now,
		})
	default:
		return attendance.AttendanceResponse{}, attendance.ErrInvalidClockKind
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	location, err := req.Location()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.checkGeofence(ctx, req.EmployeeID, req.AdminID, location); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.nowOr(req.Now)
	checkIn := timeround.RoundForClockIn(nowLocal)

	var created attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := a.AttendanceRepository.LockEmployee(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee attendance: %w", err)
		}

		_, err := a.AttendanceRepository.GetOpenSession(ctx, req.EmployeeID)
		if err == nil {
			return attendance.ErrAlreadyClockedIn
		}
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return fmt.Errorf("failed to get open session: %w", err)
		}

		if !a.allowReentry {
			from, to := a.dayWindow(nowLocal)
			_, err := a.AttendanceRepository.GetLatestBetween(ctx, req.EmployeeID, from, to)
			if err == nil {
				return attendance.ErrAlreadyClockedOut
			}
			if !errors.Is(err, attendance.ErrAttendanceNotFound) {
				return fmt.Errorf("failed to get today's attendance: %w", err)
			}
		}

		created, err = a.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID:       req.EmployeeID,
			AdminID:          req.AdminID,
			CheckInTime:      checkIn,
			CheckInLatitude:  &location.Latitude,
			CheckInLongitude: &location.Longitude,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				return err
			}
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee clocked in", "employee_id", req.EmployeeID, "attendance_id", created.ID, "check_in_time", created.CheckInTime)
	a.publish(req.AdminID, sse.EventAttendanceClockIn, created)

	return attendance.NewAttendanceResponse(created, a.loc), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	location, err := req.Location()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.checkGeofence(ctx, req.EmployeeID, req.AdminID, location); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkOut := timeround.RoundForClockOut(a.nowOr(req.Now))

	var closed attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := a.AttendanceRepository.LockEmployee(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee attendance: %w", err)
		}

		open, err := a.AttendanceRepository.GetOpenSession(ctx, req.EmployeeID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotClockedIn
			}
			return fmt.Errorf("failed to get open session: %w", err)
		}
		if req.AttendanceID != "" && req.AttendanceID != open.ID {
			return attendance.ErrNotClockedIn
		}

		// Rounding both ends can cross within the same ten minutes.
		if checkOut.Before(open.CheckInTime) {
			checkOut = open.CheckInTime
		}
		open.CheckOutTime = &checkOut
		open.CheckOutLatitude = &location.Latitude
		open.CheckOutLongitude = &location.Longitude

		if err := a.AttendanceRepository.Update(ctx, open); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		closed = open
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee clocked out", "employee_id", req.EmployeeID, "attendance_id", closed.ID, "worked_minutes", closed.WorkedMinutes())
	a.publish(req.AdminID, sse.EventAttendanceClockOut, closed)

	return attendance.NewAttendanceResponse(closed, a.loc), nil
}

// CurrentStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CurrentStatus(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	status, err := a.currentStatus(ctx, employeeID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	resp := attendance.StatusResponse{
		State:        status.State,
		AttendanceID: status.RecordID,
	}
	if status.Record != nil {
		record := attendance.NewAttendanceResponse(*status.Record, a.loc)
		resp.Attendance = &record
	}

	switch status.State {
	case attendance.StateOpen:
		resp.CanClockOut = true
		resp.Message = "You are clocked in"
		if status.Record != nil && workday.DateKey(status.Record.CheckInTime.In(a.loc)) != workday.DateKey(a.clock().In(a.loc)) {
			resp.Message = "You have an open session from a previous day, please clock out"
		}
	case attendance.StateClosed:
		resp.CanClockIn = a.allowReentry
		resp.Message = "You have clocked out today"
	default:
		resp.CanClockIn = true
		resp.Message = "You have not clocked in today"
	}
	return resp, nil
}

func (a *AttendanceServiceImpl) currentStatus(ctx context.Context, employeeID string) (attendance.Status, error) {
	open, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err == nil {
		return attendance.Status{State: attendance.StateOpen, RecordID: open.ID, Record: &open}, nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Status{}, fmt.Errorf("failed to get open session: %w", err)
	}

	from, to := a.dayWindow(a.clock().In(a.loc))
	latest, err := a.AttendanceRepository.GetLatestBetween(ctx, employeeID, from, to)
	if err == nil {
		return attendance.Status{State: attendance.StateClosed, RecordID: latest.ID, Record: &latest}, nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Status{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return attendance.Status{State: attendance.StateNoRecord}, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	scoped := filter.ToFilter()
	return a.ListAttendance(ctx, scoped, filter.AdminID)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter, adminID string) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.Resolve(a.loc)

	attendances, total, err := a.AttendanceRepository.List(ctx, filter, adminID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, attendance.NewAttendanceResponse(att, a.loc))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// CreateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn, _ := validator.IsValidDateTime(req.CheckInTime)
	record := attendance.Attendance{
		EmployeeID:        req.EmployeeID,
		AdminID:           req.AdminID,
		CheckInTime:       checkIn,
		CheckInLatitude:   req.CheckInLatitude,
		CheckInLongitude:  req.CheckInLongitude,
		CheckOutLatitude:  req.CheckOutLatitude,
		CheckOutLongitude: req.CheckOutLongitude,
	}
	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		checkOut, _ := validator.IsValidDateTime(*req.CheckOutTime)
		record.CheckOutTime = &checkOut
	}

	var created attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.AdminID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return err
			}
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if err := a.AttendanceRepository.LockEmployee(ctx, emp.ID); err != nil {
			return fmt.Errorf("failed to lock employee attendance: %w", err)
		}

		if record.IsOpen() {
			if err := a.ensureNoOpenSession(ctx, emp.ID, ""); err != nil {
				return err
			}
		}

		created, err = a.AttendanceRepository.Create(ctx, record)
		if err != nil {
			if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				return err
			}
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		created.EmployeeName = &emp.FullName
		created.EmployeePosition = emp.Position
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance created by admin", "admin_id", req.AdminID, "employee_id", req.EmployeeID, "attendance_id", created.ID)
	return attendance.NewAttendanceResponse(created, a.loc), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByID(ctx, req.ID, req.AdminID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return err
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		if err := a.AttendanceRepository.LockEmployee(ctx, existing.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee attendance: %w", err)
		}

		wasOpen := existing.IsOpen()
		if err := req.Apply(&existing); err != nil {
			return err
		}
		if existing.IsOpen() && !wasOpen {
			if err := a.ensureNoOpenSession(ctx, existing.EmployeeID, existing.ID); err != nil {
				return err
			}
		}

		if err := a.AttendanceRepository.Update(ctx, existing); err != nil {
			if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				return err
			}
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance corrected by admin", "admin_id", req.AdminID, "attendance_id", updated.ID)
	return attendance.NewAttendanceResponse(updated, a.loc), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string, adminID string) error {
	if !validator.IsValidUUID(id) {
		return attendance.ErrAttendanceNotFound
	}
	if err := a.AttendanceRepository.Delete(ctx, id, adminID); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	slog.Info("Attendance deleted by admin", "admin_id", adminID, "attendance_id", id)
	return nil
}

func (a *AttendanceServiceImpl) ensureNoOpenSession(ctx context.Context, employeeID, exceptID string) error {
	open, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err == nil && open.ID != exceptID {
		return attendance.ErrAlreadyClockedIn
	}
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return fmt.Errorf("failed to get open session: %w", err)
	}
	return nil
}

func (a *AttendanceServiceImpl) checkGeofence(ctx context.Context, employeeID, adminID string, location attendance.Location) error {
	office, err := a.offices.OfficeFor(ctx, adminID)
	if err != nil {
		return fmt.Errorf("failed to get office location: %w", err)
	}

	within, distance := geofence.Validate(location.Latitude, location.Longitude, office.Latitude, office.Longitude, office.RadiusMeters)
	if !within {
		slog.Warn("Clock attempt outside geofence",
			"employee_id", employeeID,
			"distance_meters", math.Round(distance),
			"radius_meters", office.RadiusMeters,
		)
		return attendance.ErrOutsideGeofence
	}
	return nil
}

// nowOr returns t, or the service clock when t is zero, in the organization timezone.
func (a *AttendanceServiceImpl) nowOr(t time.Time) time.Time {
	if t.IsZero() {
		t = a.clock()
	}
	return t.In(a.loc)
}

// dayWindow returns [midnight, next midnight) for the local date of t.
func (a *AttendanceServiceImpl) dayWindow(t time.Time) (time.Time, time.Time) {
	start := workday.DateOf(t.In(a.loc))
	return start, start.AddDate(0, 0, 1)
}

func (a *AttendanceServiceImpl) publish(adminID, name string, record attendance.Attendance) {
	if a.events == nil || adminID == "" {
		return
	}
	a.events.Publish(adminID, sse.Event{
		Event: name,
		Data:  attendance.NewAttendanceResponse(record, a.loc),
	})
}
