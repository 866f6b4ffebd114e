package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/workday"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const todayActivityLimit = 10

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	attendanceRepo    attendance.AttendanceRepository
	attendanceService attendance.AttendanceService
	payrollService    payroll.PayrollService
	loc               *time.Location
	clock             func() time.Time
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	attendanceRepo attendance.AttendanceRepository,
	attendanceService attendance.AttendanceService,
	payrollService payroll.PayrollService,
	loc *time.Location,
	clock func() time.Time,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		attendanceRepo:      attendanceRepo,
		attendanceService:   attendanceService,
		payrollService:      payrollService,
		loc:                 loc,
		clock:               clock,
	}
}

// GetAdminDashboard runs the independent aggregates in parallel.
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context, req dashboard.AdminDashboardRequest) (dashboard.AdminDashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}

	now := s.clock().In(s.loc)
	today := workday.DateOf(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -6)

	var period payroll.Period
	if req.StartDate == "" {
		period = payroll.MonthPeriod(now, s.loc)
	} else {
		start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
		end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)
		period = payroll.Period{Start: start, End: end}
	}

	var (
		totalEmployees int64
		presentToday   int64
		workedMinutes  int64
		daily          []dashboard.DailyPresence
		activities     []dashboard.Activity
		estimate       payroll.TotalEstimate
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountEmployees(gCtx, req.AdminID)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		totalEmployees = n
		return nil
	})

	g.Go(func() error {
		n, err := s.CountPresent(gCtx, req.AdminID, today, tomorrow)
		if err != nil {
			return fmt.Errorf("failed to count present employees: %w", err)
		}
		presentToday = n
		return nil
	})

	g.Go(func() error {
		m, err := s.SumWorkedMinutes(gCtx, req.AdminID, period.Start, period.EndExclusive())
		if err != nil {
			return fmt.Errorf("failed to sum worked minutes: %w", err)
		}
		workedMinutes = m
		return nil
	})

	g.Go(func() error {
		rows, err := s.DailyPresence(gCtx, req.AdminID, weekStart, tomorrow, s.loc.String())
		if err != nil {
			return fmt.Errorf("failed to get daily presence: %w", err)
		}
		daily = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.LatestActivities(gCtx, req.AdminID, today, tomorrow, todayActivityLimit)
		if err != nil {
			return fmt.Errorf("failed to get today's activities: %w", err)
		}
		activities = rows
		return nil
	})

	g.Go(func() error {
		total, err := s.payrollService.EstimateTotal(gCtx, req.AdminID, period)
		if err != nil {
			return fmt.Errorf("failed to estimate salaries: %w", err)
		}
		estimate = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}

	averageHours := decimal.Zero
	if totalEmployees > 0 {
		averageHours = decimal.NewFromInt(workedMinutes).
			Div(decimal.NewFromInt(60 * totalEmployees)).
			Round(2)
	}

	return dashboard.AdminDashboardResponse{
		StartDate:            workday.DateKey(period.Start),
		EndDate:              workday.DateKey(period.End),
		TotalEmployees:       totalEmployees,
		PresentToday:         presentToday,
		AbsentToday:          max(0, totalEmployees-presentToday),
		AverageWorkHours:     averageHours,
		TotalEstimatedSalary: estimate.Total.Round(2),
		Last7Days:            fillWeek(weekStart, daily),
		TodayActivities:      s.mapActivities(activities),
	}, nil
}

// fillWeek returns seven consecutive days from start, zero-filling days
// nobody checked in.
func fillWeek(start time.Time, rows []dashboard.DailyPresence) []dashboard.DailyItem {
	byDate := make(map[string]int64, len(rows))
	for _, r := range rows {
		byDate[workday.DateKey(r.Date)] = r.Present
	}

	items := make([]dashboard.DailyItem, 0, 7)
	for i := range 7 {
		d := start.AddDate(0, 0, i)
		key := workday.DateKey(d)
		items = append(items, dashboard.DailyItem{
			Date:    key,
			Weekday: d.Weekday().String(),
			Present: byDate[key],
		})
	}
	return items
}

func (s *DashboardServiceImpl) mapActivities(rows []dashboard.Activity) []dashboard.ActivityItem {
	items := make([]dashboard.ActivityItem, 0, len(rows))
	for _, a := range rows {
		items = append(items, dashboard.ActivityItem{
			EmployeeID:   a.EmployeeID,
			EmployeeName: a.EmployeeName,
			Kind:         a.Kind,
			Time:         a.At.In(s.loc).Format("15:04"),
		})
	}
	return items
}

// GetEmployeeDashboard summarizes one month for the signed-in employee.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, req dashboard.EmployeeDashboardRequest) (dashboard.EmployeeDashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	ref := s.clock().In(s.loc)
	if req.Month != "" {
		ref, _ = time.ParseInLocation("2006-01", req.Month, s.loc)
	}
	period := payroll.MonthPeriod(ref, s.loc)

	records, err := s.attendanceRepo.ListByEmployeeBetween(ctx, req.EmployeeID, period.Start, period.EndExclusive())
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	days := make(map[string]bool)
	var minutes int64
	for _, r := range records {
		if r.IsOpen() {
			continue
		}
		days[workday.DateKey(r.CheckInTime.In(s.loc))] = true
		minutes += r.WorkedMinutes()
	}

	resp := dashboard.EmployeeDashboardResponse{
		Month:           period.Start.Format("2006-01"),
		PresentDays:     len(days),
		WorkedHours:     decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(2),
		HasSalaryModel:  true,
		EstimatedSalary: decimal.Zero,
	}

	estimate, err := s.payrollService.EstimateSalary(ctx, payroll.EstimateSalaryRequest{
		AdminID:    req.AdminID,
		EmployeeID: req.EmployeeID,
		StartDate:  workday.DateKey(period.Start),
		EndDate:    workday.DateKey(period.End),
	})
	switch {
	case err == nil:
		resp.SalaryType = string(estimate.SalaryType)
		resp.EstimatedSalary = estimate.EstimatedSalary
	case errors.Is(err, salary.ErrNoSalaryModel):
		resp.HasSalaryModel = false
	case errors.Is(err, salary.ErrUnsupportedSalaryModel):
		slog.Warn("Salary estimate skipped", "employee_id", req.EmployeeID, "error", err)
	default:
		return dashboard.EmployeeDashboardResponse{}, err
	}

	today, err := s.attendanceService.CurrentStatus(ctx, req.EmployeeID)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}
	resp.Today = today

	return resp, nil
}
