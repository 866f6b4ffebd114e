package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/email"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/workday"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Options configures payslip generation.
type Options struct {
	Location    *time.Location
	Calendar    workday.Calendar
	MaxParallel int
	Timeout     time.Duration
	Clock       func() time.Time
}

type PayrollServiceImpl struct {
	payslipRepo    payroll.PayslipRepository
	employeeRepo   employee.EmployeeRepository
	salaryRepo     salary.SalaryModelRepository
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    holiday.HolidayRepository
	events         sse.Publisher
	mailer         email.EmailService
	loc            *time.Location
	calendar       workday.Calendar
	maxParallel    int
	timeout        time.Duration
	clock          func() time.Time
}

// NewPayrollService wires the generator. events and mailer may be nil.
func NewPayrollService(
	payslipRepo payroll.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	salaryRepo salary.SalaryModelRepository,
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	events sse.Publisher,
	mailer email.EmailService,
	opts Options,
) payroll.PayrollService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxParallel < 1 {
		opts.MaxParallel = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &PayrollServiceImpl{
		payslipRepo:    payslipRepo,
		employeeRepo:   employeeRepo,
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		events:         events,
		mailer:         mailer,
		loc:            opts.Location,
		calendar:       opts.Calendar,
		maxParallel:    opts.MaxParallel,
		timeout:        opts.Timeout,
		clock:          opts.Clock,
	}
}

// evaluationInputs are the per-admin data shared by every employee of a run.
type evaluationInputs struct {
	models   map[string]salary.SalaryModel
	holidays []time.Time
}

func (s *PayrollServiceImpl) loadInputs(ctx context.Context, adminID string, period payroll.Period) (evaluationInputs, error) {
	models, err := s.salaryRepo.List(ctx, adminID)
	if err != nil {
		return evaluationInputs{}, fmt.Errorf("failed to list salary models: %w", err)
	}
	holidays, err := s.holidayRepo.ListDatesBetween(ctx, adminID, period.Start, period.End)
	if err != nil {
		return evaluationInputs{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	in := evaluationInputs{models: make(map[string]salary.SalaryModel, len(models)), holidays: holidays}
	for _, m := range models {
		in.models[m.ID] = m
	}
	return in, nil
}

// evaluate runs the evaluator for one employee without persisting anything.
func (s *PayrollServiceImpl) evaluate(ctx context.Context, emp employee.Employee, period payroll.Period, in evaluationInputs) (salary.SalaryModel, decimal.Decimal, payroll.CalculationDetails, error) {
	if !emp.HasSalaryModel() {
		return salary.SalaryModel{}, decimal.Zero, payroll.CalculationDetails{}, salary.ErrNoSalaryModel
	}
	model, ok := in.models[*emp.SalaryModelID]
	if !ok {
		return salary.SalaryModel{}, decimal.Zero, payroll.CalculationDetails{}, salary.ErrNoSalaryModel
	}

	records, err := s.attendanceRepo.ListByEmployeeBetween(ctx, emp.ID, period.Start, period.EndExclusive())
	if err != nil {
		return model, decimal.Zero, payroll.CalculationDetails{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	final, details, err := Evaluate(&model, records, period, in.holidays, s.calendar)
	return model, final, details, err
}

// GeneratePayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslips(ctx context.Context, req payroll.GeneratePayslipsRequest) (payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResult{}, err
	}
	period := req.Period(s.loc)

	employees, err := s.employeeRepo.ListWithSalaryModel(ctx, req.AdminID)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to list employees: %w", err)
	}
	total, err := s.employeeRepo.CountByAdmin(ctx, req.AdminID)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to count employees: %w", err)
	}
	in, err := s.loadInputs(ctx, req.AdminID, period)
	if err != nil {
		return payroll.GenerateResult{}, err
	}

	result := payroll.GenerateResult{
		PeriodStart: workday.DateKey(period.Start),
		PeriodEnd:   workday.DateKey(period.End),
		Skipped:     int(total) - len(employees),
		Failures:    []payroll.GenerateFailure{},
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		written []writtenPayslip
	)
	fail := func(emp employee.Employee, reason string) {
		mu.Lock()
		defer mu.Unlock()
		result.Failures = append(result.Failures, payroll.GenerateFailure{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Reason:       reason,
		})
	}

	var g errgroup.Group
	g.SetLimit(s.maxParallel)
	for _, emp := range employees {
		g.Go(func() error {
			if runCtx.Err() != nil {
				fail(emp, payroll.ErrGenerationTimedOut.Error())
				return nil
			}

			model, final, details, err := s.evaluate(runCtx, emp, period, in)
			if err != nil {
				slog.Warn("Payslip evaluation failed", "admin_id", req.AdminID, "employee_id", emp.ID, "error", err)
				fail(emp, err.Error())
				return nil
			}

			saved, err := s.payslipRepo.Upsert(runCtx, payroll.Payslip{
				EmployeeID:  emp.ID,
				AdminID:     req.AdminID,
				PeriodStart: period.Start,
				PeriodEnd:   period.End,
				SalaryType:  model.SalaryType.Normalize(),
				FinalSalary: final,
				Details:     details,
				GeneratedAt: s.clock(),
			})
			if err != nil {
				slog.Error("Failed to save payslip", "admin_id", req.AdminID, "employee_id", emp.ID, "error", err)
				fail(emp, fmt.Sprintf("failed to save payslip: %v", err))
				return nil
			}

			mu.Lock()
			result.Generated++
			written = append(written, writtenPayslip{payslip: saved, employee: emp})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	result.TimedOut = errors.Is(runCtx.Err(), context.DeadlineExceeded)
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].EmployeeName < result.Failures[j].EmployeeName
	})

	slog.Info("Payslips generated",
		"admin_id", req.AdminID,
		"period_start", result.PeriodStart,
		"generated", result.Generated,
		"skipped", result.Skipped,
		"failed", len(result.Failures),
		"timed_out", result.TimedOut,
	)

	s.notify(req.AdminID, result, written)
	return result, nil
}

type writtenPayslip struct {
	payslip  payroll.Payslip
	employee employee.Employee
}

// notify pushes SSE events synchronously and sends mails in the background.
func (s *PayrollServiceImpl) notify(adminID string, result payroll.GenerateResult, written []writtenPayslip) {
	if s.events != nil {
		s.events.Publish(adminID, sse.Event{Event: sse.EventPayslipGenerated, Data: result})
		for _, w := range written {
			s.events.Publish(w.employee.ID, sse.Event{Event: sse.EventPayslipReady, Data: payroll.ToResponse(w.payslip)})
		}
	}

	if s.mailer == nil || len(written) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		for _, w := range written {
			if w.employee.Email == "" {
				continue
			}
			err := s.mailer.SendPayslipReady(ctx, email.PayslipReady{
				To:           w.employee.Email,
				EmployeeName: w.employee.FullName,
				Period:       w.payslip.PeriodStart.Format("January 2006"),
				FinalSalary:  w.payslip.FinalSalary.StringFixed(2),
				SalaryType:   string(w.payslip.SalaryType),
			})
			if err != nil {
				slog.Error("Failed to send payslip email", "employee_id", w.employee.ID, "error", err)
			}
		}
	}()
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.PayslipResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payslips, err := s.payslipRepo.ListByPeriod(ctx, filter.AdminID, filter.PeriodStart(s.loc))
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return mapToResponses(payslips), nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string, adminID string) (payroll.PayslipResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PayslipResponse{}, payroll.ErrPayslipNotFound
	}
	p, err := s.payslipRepo.GetByID(ctx, id, adminID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayslipNotFound) {
			return payroll.PayslipResponse{}, err
		}
		return payroll.PayslipResponse{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return payroll.ToResponse(p), nil
}

// ListMyPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMyPayslips(ctx context.Context, employeeID string) ([]payroll.PayslipResponse, error) {
	payslips, err := s.payslipRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return mapToResponses(payslips), nil
}

// GetMyPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetMyPayslip(ctx context.Context, id string, employeeID string) (payroll.PayslipResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PayslipResponse{}, payroll.ErrPayslipNotFound
	}
	p, err := s.payslipRepo.GetByIDForEmployee(ctx, id, employeeID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayslipNotFound) {
			return payroll.PayslipResponse{}, err
		}
		return payroll.PayslipResponse{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return payroll.ToResponse(p), nil
}

// EstimateSalary implements payroll.PayrollService.
func (s *PayrollServiceImpl) EstimateSalary(ctx context.Context, req payroll.EstimateSalaryRequest) (payroll.SalaryEstimateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryEstimateResponse{}, err
	}
	period := req.Period(s.loc).Through(s.clock())

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, req.AdminID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.SalaryEstimateResponse{}, err
		}
		return payroll.SalaryEstimateResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	in, err := s.loadInputs(ctx, req.AdminID, period)
	if err != nil {
		return payroll.SalaryEstimateResponse{}, err
	}

	model, final, details, err := s.evaluate(ctx, emp, period, in)
	if err != nil {
		return payroll.SalaryEstimateResponse{}, err
	}

	return payroll.SalaryEstimateResponse{
		EmployeeID:         emp.ID,
		StartDate:          req.StartDate,
		EndDate:            workday.DateKey(period.End),
		SalaryType:         model.SalaryType.Normalize(),
		EstimatedSalary:    final,
		CalculationDetails: details,
	}, nil
}

// EstimateTotal implements payroll.PayrollService.
func (s *PayrollServiceImpl) EstimateTotal(ctx context.Context, adminID string, period payroll.Period) (payroll.TotalEstimate, error) {
	period = period.Through(s.clock())

	employees, err := s.employeeRepo.ListWithSalaryModel(ctx, adminID)
	if err != nil {
		return payroll.TotalEstimate{}, fmt.Errorf("failed to list employees: %w", err)
	}
	in, err := s.loadInputs(ctx, adminID, period)
	if err != nil {
		return payroll.TotalEstimate{}, err
	}

	var (
		mu    sync.Mutex
		total = payroll.TotalEstimate{Total: decimal.Zero}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	for _, emp := range employees {
		g.Go(func() error {
			_, final, _, err := s.evaluate(gctx, emp, period, in)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, salary.ErrNoSalaryModel) || errors.Is(err, salary.ErrUnsupportedSalaryModel) {
					total.Failed++
					return nil
				}
				return err
			}
			total.Total = total.Total.Add(final)
			total.Employees++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.TotalEstimate{}, err
	}
	return total, nil
}

func mapToResponses(payslips []payroll.Payslip) []payroll.PayslipResponse {
	out := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		out = append(out, payroll.ToResponse(p))
	}
	return out
}
