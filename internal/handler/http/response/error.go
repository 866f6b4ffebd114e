package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/invitation"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/notification"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/office"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrEmployeeAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Invite codes
	case errors.Is(err, invitation.ErrInviteCodeNotFound):
		NotFound(w, "Invite code not found")
	case errors.Is(err, invitation.ErrInviteCodeExpired),
		errors.Is(err, invitation.ErrInviteCodeAlreadyUsed):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoLocationFix):
		PreconditionFailed(w, err.Error())
	case errors.Is(err, attendance.ErrOutsideGeofence):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidClockKind),
		errors.Is(err, attendance.ErrCheckOutBeforeIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Salary and payroll
	case errors.Is(err, salary.ErrNoSalaryModel),
		errors.Is(err, salary.ErrUnsupportedSalaryModel):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, salary.ErrSalaryModelNotFound):
		NotFound(w, "Salary model not found")
	case errors.Is(err, salary.ErrInvalidSalaryType),
		errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidPhoneNumber):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Settings
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, err.Error())
	case errors.Is(err, office.ErrOfficeNotFound):
		NotFound(w, err.Error())

	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
