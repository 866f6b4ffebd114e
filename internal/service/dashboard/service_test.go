package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminID    = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	testEmployeeID = "11111111-1111-1111-1111-111111111111"
)

var jakarta, _ = time.LoadLocation("Asia/Jakarta")

// Wednesday
var now = time.Date(2024, 8, 7, 10, 30, 0, 0, jakarta)

type fakeDashboardRepo struct {
	employees int64
	present   int64
	minutes   int64
	daily     []dashboard.DailyPresence
	activity  []dashboard.Activity
	err       error

	sumFrom, sumTo time.Time
}

func (r *fakeDashboardRepo) CountEmployees(ctx context.Context, adminID string) (int64, error) {
	return r.employees, r.err
}

func (r *fakeDashboardRepo) CountPresent(ctx context.Context, adminID string, from, to time.Time) (int64, error) {
	return r.present, nil
}

func (r *fakeDashboardRepo) SumWorkedMinutes(ctx context.Context, adminID string, from, to time.Time) (int64, error) {
	r.sumFrom, r.sumTo = from, to
	return r.minutes, nil
}

func (r *fakeDashboardRepo) DailyPresence(ctx context.Context, adminID string, from, to time.Time, timezone string) ([]dashboard.DailyPresence, error) {
	return r.daily, nil
}

func (r *fakeDashboardRepo) LatestActivities(ctx context.Context, adminID string, from, to time.Time, limit int) ([]dashboard.Activity, error) {
	return r.activity, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
}

func (r *fakeAttendanceRepo) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return r.records, nil
}

type fakeAttendanceService struct {
	attendance.AttendanceService
}

func (fakeAttendanceService) CurrentStatus(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	return attendance.StatusResponse{State: attendance.StateNoRecord, CanClockIn: true}, nil
}

type fakePayrollService struct {
	payroll.PayrollService
	total       payroll.TotalEstimate
	estimate    payroll.SalaryEstimateResponse
	estimateErr error
}

func (f *fakePayrollService) EstimateTotal(ctx context.Context, adminID string, period payroll.Period) (payroll.TotalEstimate, error) {
	return f.total, nil
}

func (f *fakePayrollService) EstimateSalary(ctx context.Context, req payroll.EstimateSalaryRequest) (payroll.SalaryEstimateResponse, error) {
	return f.estimate, f.estimateErr
}

func newService(repo *fakeDashboardRepo, records []attendance.Attendance, pay *fakePayrollService) dashboard.DashboardService {
	return NewDashboardService(repo, &fakeAttendanceRepo{records: records}, fakeAttendanceService{}, pay, jakarta,
		func() time.Time { return now })
}

func TestGetAdminDashboard(t *testing.T) {
	repo := &fakeDashboardRepo{
		employees: 4,
		present:   3,
		minutes:   4 * 8 * 60 * 5,
		daily: []dashboard.DailyPresence{
			{Date: time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC), Present: 4},
			{Date: time.Date(2024, 8, 7, 0, 0, 0, 0, time.UTC), Present: 3},
		},
		activity: []dashboard.Activity{
			{EmployeeID: testEmployeeID, EmployeeName: "Budi", Kind: "in", At: time.Date(2024, 8, 7, 1, 2, 0, 0, time.UTC)},
		},
	}
	pay := &fakePayrollService{total: payroll.TotalEstimate{Total: decimal.RequireFromString("1234567.891"), Employees: 4}}

	resp, err := newService(repo, nil, pay).GetAdminDashboard(context.Background(), dashboard.AdminDashboardRequest{AdminID: testAdminID})
	require.NoError(t, err)

	assert.Equal(t, "2024-08-01", resp.StartDate)
	assert.Equal(t, "2024-08-31", resp.EndDate)
	assert.Equal(t, int64(4), resp.TotalEmployees)
	assert.Equal(t, int64(3), resp.PresentToday)
	assert.Equal(t, int64(1), resp.AbsentToday)
	assert.Equal(t, "40", resp.AverageWorkHours.String())
	assert.Equal(t, "1234567.89", resp.TotalEstimatedSalary.StringFixed(2))

	require.Len(t, resp.Last7Days, 7)
	assert.Equal(t, "2024-08-01", resp.Last7Days[0].Date)
	assert.Equal(t, "Thursday", resp.Last7Days[0].Weekday)
	assert.Equal(t, int64(4), resp.Last7Days[4].Present)
	assert.Equal(t, int64(0), resp.Last7Days[5].Present)
	assert.Equal(t, "2024-08-07", resp.Last7Days[6].Date)
	assert.Equal(t, int64(3), resp.Last7Days[6].Present)

	require.Len(t, resp.TodayActivities, 1)
	assert.Equal(t, "08:02", resp.TodayActivities[0].Time)

	// The worked-hours window is half-open over the month.
	assert.True(t, repo.sumFrom.Equal(time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta)))
	assert.True(t, repo.sumTo.Equal(time.Date(2024, 9, 1, 0, 0, 0, 0, jakarta)))
}

func TestGetAdminDashboard_CustomRangeAndErrors(t *testing.T) {
	t.Run("custom range", func(t *testing.T) {
		repo := &fakeDashboardRepo{}
		resp, err := newService(repo, nil, &fakePayrollService{}).GetAdminDashboard(context.Background(), dashboard.AdminDashboardRequest{
			AdminID:   testAdminID,
			StartDate: "2024-07-15",
			EndDate:   "2024-08-14",
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-07-15", resp.StartDate)
		assert.True(t, resp.AverageWorkHours.IsZero(), "no employees means no average")
		assert.True(t, repo.sumTo.Equal(time.Date(2024, 8, 15, 0, 0, 0, 0, jakarta)))
	})

	t.Run("only one bound", func(t *testing.T) {
		_, err := newService(&fakeDashboardRepo{}, nil, &fakePayrollService{}).GetAdminDashboard(context.Background(), dashboard.AdminDashboardRequest{
			AdminID:   testAdminID,
			StartDate: "2024-07-15",
		})
		assert.Error(t, err)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeDashboardRepo{err: errors.New("boom")}
		_, err := newService(repo, nil, &fakePayrollService{}).GetAdminDashboard(context.Background(), dashboard.AdminDashboardRequest{AdminID: testAdminID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count employees")
	})
}

func TestGetEmployeeDashboard(t *testing.T) {
	out1 := time.Date(2024, 8, 5, 16, 0, 0, 0, jakarta)
	out2 := time.Date(2024, 8, 6, 12, 30, 0, 0, jakarta)
	records := []attendance.Attendance{
		{CheckInTime: time.Date(2024, 8, 5, 8, 0, 0, 0, jakarta), CheckOutTime: &out1},
		{CheckInTime: time.Date(2024, 8, 6, 8, 0, 0, 0, jakarta), CheckOutTime: &out2},
		{CheckInTime: time.Date(2024, 8, 7, 8, 0, 0, 0, jakarta)},
	}

	t.Run("with salary model", func(t *testing.T) {
		pay := &fakePayrollService{estimate: payroll.SalaryEstimateResponse{
			SalaryType:      salary.SalaryTypeDaily,
			EstimatedSalary: decimal.NewFromInt(400000),
		}}
		resp, err := newService(&fakeDashboardRepo{}, records, pay).GetEmployeeDashboard(context.Background(), dashboard.EmployeeDashboardRequest{
			EmployeeID: testEmployeeID,
			AdminID:    testAdminID,
		})
		require.NoError(t, err)

		assert.Equal(t, "2024-08", resp.Month)
		assert.Equal(t, 2, resp.PresentDays)
		assert.Equal(t, "12.5", resp.WorkedHours.String())
		assert.True(t, resp.HasSalaryModel)
		assert.Equal(t, "daily", resp.SalaryType)
		assert.True(t, decimal.NewFromInt(400000).Equal(resp.EstimatedSalary))
		assert.Equal(t, attendance.StateNoRecord, resp.Today.State)
	})

	t.Run("without salary model", func(t *testing.T) {
		pay := &fakePayrollService{estimateErr: salary.ErrNoSalaryModel}
		resp, err := newService(&fakeDashboardRepo{}, records, pay).GetEmployeeDashboard(context.Background(), dashboard.EmployeeDashboardRequest{
			EmployeeID: testEmployeeID,
			AdminID:    testAdminID,
			Month:      "2024-07",
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-07", resp.Month)
		assert.False(t, resp.HasSalaryModel)
		assert.True(t, resp.EstimatedSalary.IsZero())
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := newService(&fakeDashboardRepo{}, nil, &fakePayrollService{}).GetEmployeeDashboard(context.Background(), dashboard.EmployeeDashboardRequest{
			EmployeeID: testEmployeeID,
			Month:      "Agustus",
		})
		assert.Error(t, err)
	})
}
