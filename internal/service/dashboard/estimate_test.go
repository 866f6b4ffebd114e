package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/workday"
	payrollService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const monthlyModelID = "22222222-2222-2222-2222-222222222222"

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	emp employee.Employee
}

func (r fakeEmployeeRepo) GetByID(ctx context.Context, id string, adminID string) (employee.Employee, error) {
	if id != r.emp.ID || adminID != r.emp.AdminID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.emp, nil
}

func (r fakeEmployeeRepo) ListWithSalaryModel(ctx context.Context, adminID string) ([]employee.Employee, error) {
	return []employee.Employee{r.emp}, nil
}

type fakeSalaryRepo struct {
	salary.SalaryModelRepository
}

func (fakeSalaryRepo) List(ctx context.Context, adminID string) ([]salary.SalaryModel, error) {
	return []salary.SalaryModel{{
		ID:                   monthlyModelID,
		AdminID:              adminID,
		ModelName:            "Staff",
		SalaryType:           salary.SalaryTypeMonthly,
		BaseSalary:           decimal.NewFromInt(5000000),
		DeductionPerDay:      decimal.NewFromInt(50000),
		OvertimeBonusPerHour: decimal.NewFromInt(20000),
		WorkHoursPerDay:      decimal.NewFromInt(8),
	}}, nil
}

type fakeHolidayRepo struct {
	holiday.HolidayRepository
}

func (fakeHolidayRepo) ListDatesBetween(ctx context.Context, adminID string, from, to time.Time) ([]time.Time, error) {
	return nil, nil
}

// Full attendance from 1 August up to now, with today's session still open.
func attendedSoFar() []attendance.Attendance {
	var records []attendance.Attendance
	for _, day := range []int{1, 2, 5, 6} {
		in := time.Date(2024, 8, day, 8, 0, 0, 0, jakarta)
		out := in.Add(8 * time.Hour)
		records = append(records, attendance.Attendance{EmployeeID: testEmployeeID, CheckInTime: in, CheckOutTime: &out})
	}
	return append(records, attendance.Attendance{EmployeeID: testEmployeeID, CheckInTime: time.Date(2024, 8, 7, 8, 0, 0, 0, jakarta)})
}

func TestDashboards_CurrentMonthEstimateIgnoresFutureDays(t *testing.T) {
	modelID := monthlyModelID
	records := &fakeAttendanceRepo{records: attendedSoFar()}
	pay := payrollService.NewPayrollService(nil,
		fakeEmployeeRepo{emp: employee.Employee{ID: testEmployeeID, AdminID: testAdminID, FullName: "Budi", SalaryModelID: &modelID}},
		fakeSalaryRepo{}, records, fakeHolidayRepo{}, nil, nil,
		payrollService.Options{
			Location: jakarta,
			Calendar: workday.NewCalendar(workday.DefaultPattern),
			Clock:    func() time.Time { return now },
		})
	svc := NewDashboardService(&fakeDashboardRepo{employees: 1}, records, fakeAttendanceService{}, pay, jakarta,
		func() time.Time { return now })

	emp, err := svc.GetEmployeeDashboard(context.Background(), dashboard.EmployeeDashboardRequest{
		EmployeeID: testEmployeeID,
		AdminID:    testAdminID,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, emp.PresentDays)
	assert.True(t, decimal.NewFromInt(5000000).Equal(emp.EstimatedSalary), "got %s", emp.EstimatedSalary)

	admin, err := svc.GetAdminDashboard(context.Background(), dashboard.AdminDashboardRequest{AdminID: testAdminID})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000000).Equal(admin.TotalEstimatedSalary), "got %s", admin.TotalEstimatedSalary)
}
