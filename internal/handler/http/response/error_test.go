package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		code     string
	}{
		{"no location fix", attendance.ErrNoLocationFix, http.StatusPreconditionFailed, "PRECONDITION_FAILED"},
		{"outside geofence", attendance.ErrOutsideGeofence, http.StatusForbidden, "FORBIDDEN"},
		{"already clocked in", attendance.ErrAlreadyClockedIn, http.StatusConflict, "CONFLICT"},
		{"not clocked in", attendance.ErrNotClockedIn, http.StatusConflict, "CONFLICT"},
		{"no salary model", salary.ErrNoSalaryModel, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"unsupported salary model", salary.ErrUnsupportedSalaryModel, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"payslip not found", payroll.ErrPayslipNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrapped sentinel", fmt.Errorf("failed to clock in: %w", attendance.ErrAlreadyClockedIn), http.StatusConflict, "CONFLICT"},
		{"persistence failure", fmt.Errorf("failed to create attendance: %w", errors.New("connection reset")), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err)

			assert.Equal(t, tt.expected, w.Code)

			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("latitude", "latitude must be between -90 and 90")

	w := httptest.NewRecorder()
	HandleError(w, errs.Err())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "latitude must be between -90 and 90", body.Error.Details["latitude"])
}
