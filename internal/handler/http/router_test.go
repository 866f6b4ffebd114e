package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/config"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/notification"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// fakeAttendanceService records the request it received. Methods the tests do
// not exercise fall through to the nil embedded interface.
type fakeAttendanceService struct {
	attendance.AttendanceService
	lastClock attendance.ClockActionRequest
	clockErr  error
}

func (f *fakeAttendanceService) ClockAction(_ context.Context, req attendance.ClockActionRequest) (attendance.AttendanceResponse, error) {
	f.lastClock = req
	if f.clockErr != nil {
		return attendance.AttendanceResponse{}, f.clockErr
	}
	return attendance.AttendanceResponse{ID: "att-1", EmployeeID: req.EmployeeID, Status: "open"}, nil
}

type fakePayrollService struct {
	payroll.PayrollService
	lastGenerate payroll.GeneratePayslipsRequest
}

func (f *fakePayrollService) GeneratePayslips(_ context.Context, req payroll.GeneratePayslipsRequest) (payroll.GenerateResult, error) {
	f.lastGenerate = req
	return payroll.GenerateResult{
		PeriodStart: "2024-08-01",
		PeriodEnd:   "2024-08-31",
		Generated:   2,
		Skipped:     1,
		Failures:    []payroll.GenerateFailure{{EmployeeID: "e3", EmployeeName: "Eko", Reason: "salary model type is not supported"}},
	}, nil
}

type fakeAuthService struct {
	auth.AuthService
}

func (fakeAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	return auth.TokenResponse{AccessToken: "token", TokenType: "Bearer"}, nil
}

type fakeNotificationService struct {
	notification.Service
	lastList notification.ListRequest
	lastRead notification.MarkAsReadRequest
}

func (f *fakeNotificationService) List(_ context.Context, req notification.ListRequest) (notification.ListResponse, error) {
	f.lastList = req
	return notification.ListResponse{Notifications: []notification.NotificationResponse{}, Total: 11, Page: req.Page, PageSize: req.PageSize}, nil
}

func (f *fakeNotificationService) MarkAsRead(_ context.Context, req notification.MarkAsReadRequest) (int64, error) {
	f.lastRead = req
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return int64(len(req.NotificationIDs)), nil
}

type routerFixture struct {
	router        http.Handler
	attendance    *fakeAttendanceService
	payroll       *fakePayrollService
	notifications *fakeNotificationService
	adminToken    string
	employeeToken string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)

	f := &routerFixture{
		attendance:    &fakeAttendanceService{},
		payroll:       &fakePayrollService{},
		notifications: &fakeNotificationService{},
	}
	f.router = NewRouter(config.AppConfig{Env: "test", CORSOrigins: []string{"http://localhost:3000"}}, jwtService, Handlers{
		Auth:         NewAuthHandler(fakeAuthService{}),
		Attendance:   NewAttendanceHandler(f.attendance),
		SalaryModel:  NewSalaryModelHandler(nil),
		Employee:     NewEmployeeHandler(nil, f.payroll),
		Invitation:   NewInvitationHandler(nil),
		Holiday:      NewHolidayHandler(nil, time.UTC),
		Office:       NewOfficeHandler(nil),
		Payroll:      NewPayrollHandler(f.payroll),
		Dashboard:    NewDashboardHandler(nil),
		Events:       NewEventHandler(jwtService, sse.NewHub()),
		Notification: NewNotificationHandler(f.notifications),
		Report:       NewReportHandler(nil),
	})

	f.adminToken, _, err = jwtService.GenerateAccessToken(jwt.Claims{UserID: "admin-1", AdminID: "admin-1", Role: user.RoleAdmin})
	require.NoError(t, err)
	f.employeeToken, _, err = jwtService.GenerateAccessToken(jwt.Claims{UserID: "emp-1", AdminID: "admin-1", EmployeeID: "emp-1", Role: user.RoleEmployee})
	require.NoError(t, err)
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestClock_ScopesToTokenIdentity(t *testing.T) {
	f := newRouterFixture(t)

	lat, lon := -6.2, 106.8
	w, resp := f.do(t, http.MethodPost, "/api/v1/attendance/clock", f.employeeToken, map[string]interface{}{
		"kind":      "IN",
		"latitude":  lat,
		"longitude": lon,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "emp-1", f.attendance.lastClock.EmployeeID)
	assert.Equal(t, "admin-1", f.attendance.lastClock.AdminID)
	assert.Equal(t, attendance.ClockIn, f.attendance.lastClock.Kind)
}

func TestClock_ErrorMapping(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.clockErr = attendance.ErrOutsideGeofence

	lat, lon := -6.2, 106.8
	w, resp := f.do(t, http.MethodPost, "/api/v1/attendance/clock", f.employeeToken, map[string]interface{}{
		"kind": "out", "latitude": lat, "longitude": lon,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, attendance.ErrOutsideGeofence.Error(), resp.Error.Message)
}

func TestClock_InvalidKindIsValidationError(t *testing.T) {
	f := newRouterFixture(t)

	lat, lon := -6.2, 106.8
	w, resp := f.do(t, http.MethodPost, "/api/v1/attendance/clock", f.employeeToken, map[string]interface{}{
		"kind": "sideways", "latitude": lat, "longitude": lon,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "kind")
}

func TestClock_RequiresEmployeeRole(t *testing.T) {
	f := newRouterFixture(t)

	w, _ := f.do(t, http.MethodPost, "/api/v1/attendance/clock", f.adminToken, map[string]interface{}{"kind": "in"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/v1/attendance/clock", "", map[string]interface{}{"kind": "in"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGeneratePayslips_ReturnsFailuresWithCounts(t *testing.T) {
	f := newRouterFixture(t)

	w, resp := f.do(t, http.MethodPost, "/api/v1/payslips/generate", f.adminToken, map[string]string{"period_start": "2024-08-15"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", f.payroll.lastGenerate.AdminID)
	assert.Equal(t, "2024-08-15", f.payroll.lastGenerate.PeriodStart)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, data["generated"])
	assert.EqualValues(t, 1, data["skipped"])
	assert.Len(t, data["failures"], 1)

	w, _ = f.do(t, http.MethodPost, "/api/v1/payslips/generate", f.employeeToken, map[string]string{"period_start": "2024-08-15"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newRouterFixture(t)

	w, resp := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "budi@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	w, _ = f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "budi@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEvents_RejectsMissingOrAccessToken(t *testing.T) {
	f := newRouterFixture(t)

	w, _ := f.do(t, http.MethodGet, "/api/v1/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodGet, "/api/v1/events?token="+f.adminToken, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "access tokens cannot open the stream")
}

func TestNotifications_ScopedToCallerForBothRoles(t *testing.T) {
	f := newRouterFixture(t)

	w, resp := f.do(t, http.MethodGet, "/api/v1/notifications?page=2&page_size=5&unread_only=true", f.employeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(11), resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, "emp-1", f.notifications.lastList.RecipientID)
	assert.Equal(t, 2, f.notifications.lastList.Page)
	assert.Equal(t, 5, f.notifications.lastList.PageSize)
	assert.True(t, f.notifications.lastList.UnreadOnly)

	w, _ = f.do(t, http.MethodGet, "/api/v1/notifications", f.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", f.notifications.lastList.RecipientID)
	assert.False(t, f.notifications.lastList.UnreadOnly)

	w, _ = f.do(t, http.MethodGet, "/api/v1/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotifications_MarkAsReadValidates(t *testing.T) {
	f := newRouterFixture(t)

	w, resp := f.do(t, http.MethodPut, "/api/v1/notifications/read", f.employeeToken, map[string]interface{}{
		"notification_ids": []string{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "notification_ids")

	w, _ = f.do(t, http.MethodPut, "/api/v1/notifications/read", f.employeeToken, map[string]interface{}{
		"notification_ids": []string{"0190d3f4-5b6a-7c8d-9e0f-112233445566"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "emp-1", f.notifications.lastRead.RecipientID)
}

func TestReports_RequireAdmin(t *testing.T) {
	f := newRouterFixture(t)

	w, _ := f.do(t, http.MethodGet, "/api/v1/reports/attendance?month=2024-08", f.employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = f.do(t, http.MethodGet, "/api/v1/reports/payroll?month=2024-08", f.employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
