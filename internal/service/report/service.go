package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	reportRepo   report.ReportRepository
	holidayRepo  holiday.HolidayRepository
	employeeRepo employee.EmployeeRepository
	calendar     workday.Calendar
	loc          *time.Location
	now          func() time.Time
}

func NewReportService(
	reportRepo report.ReportRepository,
	holidayRepo holiday.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	calendar workday.Calendar,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		reportRepo:   reportRepo,
		holidayRepo:  holidayRepo,
		employeeRepo: employeeRepo,
		calendar:     calendar,
		loc:          loc,
		now:          time.Now,
	}
}

// monthBounds parses a validated YYYY-MM in the organization timezone.
func (s *ReportServiceImpl) monthBounds(month string) (time.Time, time.Time) {
	t, _ := time.ParseInLocation("2006-01", month, s.loc)
	return workday.MonthBounds(t)
}

// GenerateMonthlyAttendanceReport generates the monthly attendance report
func (s *ReportServiceImpl) GenerateMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.MonthlyAttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	first, last := s.monthBounds(req.Month)

	holidays, err := s.holidayRepo.ListDatesBetween(ctx, req.AdminID, first, last)
	if err != nil {
		return report.MonthlyAttendanceReport{}, fmt.Errorf("failed to get holidays: %w", err)
	}

	rows, err := s.reportRepo.GetDailyAttendance(ctx, req.AdminID, first, last.AddDate(0, 0, 1), s.loc.String())
	if err != nil {
		return report.MonthlyAttendanceReport{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	summary := s.calendar.Summarize(first, last, holidays)
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[workday.DateKey(h)] = true
	}

	result := report.MonthlyAttendanceReport{
		Month:       req.Month,
		PeriodStart: workday.DateKey(first),
		PeriodEnd:   workday.DateKey(last),
		GeneratedAt: s.now().In(s.loc).Format(time.RFC3339),
		WorkingDays: len(summary.WorkingDays),
		Holidays:    summary.Holidays,
		Employees:   []report.MonthlyAttendanceEmployee{},
	}

	for _, group := range groupByEmployee(rows) {
		result.Employees = append(result.Employees, s.buildEmployee(group, first, last, holidaySet))
	}

	return result, nil
}

func groupByEmployee(rows []report.DailyAttendanceRow) [][]report.DailyAttendanceRow {
	var groups [][]report.DailyAttendanceRow
	for i, row := range rows {
		if i == 0 || rows[i-1].EmployeeID != row.EmployeeID {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], row)
	}
	return groups
}

// buildEmployee walks every date of the month. A working day is absent when
// it has neither a closed nor an open record; weekend and holiday work still
// counts as present.
func (s *ReportServiceImpl) buildEmployee(rows []report.DailyAttendanceRow, first, last time.Time, holidays map[string]bool) report.MonthlyAttendanceEmployee {
	emp := report.MonthlyAttendanceEmployee{
		EmployeeID:   rows[0].EmployeeID,
		EmployeeName: rows[0].EmployeeName,
		Position:     rows[0].Position,
		DailyLogs:    []report.AttendanceDailyLog{},
	}

	byDate := make(map[string]report.DailyAttendanceRow, len(rows))
	for _, row := range rows {
		if row.Date != nil {
			byDate[workday.DateKey(*row.Date)] = row
		}
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := workday.DateKey(d)
		log := report.AttendanceDailyLog{
			Date:      key,
			DayOfWeek: d.Weekday().String(),
		}

		row, worked := byDate[key]
		switch {
		case worked && row.ClosedRecords > 0:
			log.Status = report.StatusPresent
			emp.Summary.PresentDays++
		case worked:
			log.Status = report.StatusOpen
		case holidays[key]:
			log.Status = report.StatusHoliday
		case s.calendar.IsWorkingWeekday(d.Weekday()):
			log.Status = report.StatusAbsent
			emp.Summary.AbsentDays++
		default:
			log.Status = report.StatusOff
		}

		if worked {
			log.ClockIn = s.clockTime(row.FirstCheckIn)
			log.ClockOut = s.clockTime(row.LastCheckOut)
			log.WorkedMinutes = row.WorkedMinutes
			emp.Summary.WorkedMinutes += row.WorkedMinutes
			emp.Summary.OpenRecords += row.OpenRecords
		}

		emp.DailyLogs = append(emp.DailyLogs, log)
	}

	emp.Summary.WorkedHours = decimal.NewFromInt(emp.Summary.WorkedMinutes).Div(decimal.NewFromInt(60)).Round(2)
	return emp
}

func (s *ReportServiceImpl) clockTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.In(s.loc).Format("15:04")
	return &v
}

// GeneratePayrollSummaryReport generates the payroll summary report
func (s *ReportServiceImpl) GeneratePayrollSummaryReport(ctx context.Context, req report.PayrollSummaryReportRequest) (report.PayrollSummaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollSummaryReport{}, err
	}

	first, last := s.monthBounds(req.Month)

	rows, err := s.reportRepo.GetPayrollSummary(ctx, req.AdminID, first)
	if err != nil {
		return report.PayrollSummaryReport{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	employees, err := s.employeeRepo.CountByAdmin(ctx, req.AdminID)
	if err != nil {
		return report.PayrollSummaryReport{}, fmt.Errorf("failed to count employees: %w", err)
	}

	result := report.PayrollSummaryReport{
		Month:            req.Month,
		PeriodStart:      workday.DateKey(first),
		PeriodEnd:        workday.DateKey(last),
		GeneratedAt:      s.now().In(s.loc).Format(time.RFC3339),
		TotalFinalSalary: decimal.Zero,
		TotalDeductions:  decimal.Zero,
		TotalOvertimePay: decimal.Zero,
		BySalaryType:     []report.PayrollSummaryRow{},
	}

	for _, row := range rows {
		result.Payslips += row.Payslips
		result.TotalFinalSalary = result.TotalFinalSalary.Add(row.TotalFinalSalary)
		result.TotalDeductions = result.TotalDeductions.Add(row.TotalDeductions)
		result.TotalOvertimePay = result.TotalOvertimePay.Add(row.TotalOvertimePay)
		result.BySalaryType = append(result.BySalaryType, row)
	}

	if missing := employees - int64(result.Payslips); missing > 0 {
		result.EmployeesWithoutPayslip = missing
	}

	return result, nil
}
