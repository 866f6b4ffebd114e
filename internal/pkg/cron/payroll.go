package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/user"
)

type PayrollJobs struct {
	userRepo       user.UserRepository
	payrollService payroll.PayrollService
	loc            *time.Location
	now            func() time.Time
}

func NewPayrollJobs(userRepo user.UserRepository, payrollService payroll.PayrollService, loc *time.Location) *PayrollJobs {
	return &PayrollJobs{
		userRepo:       userRepo,
		payrollService: payrollService,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "generate_previous_month_payslips",
		Interval: 24 * time.Hour,
		Fn:       j.GeneratePreviousMonth,
	})
}

// GeneratePreviousMonth generates last month's payslips for every admin. It
// only acts on the first day of the month; reruns overwrite the same
// payslips.
func (j *PayrollJobs) GeneratePreviousMonth(ctx context.Context) error {
	today := j.now().In(j.loc)
	if today.Day() != 1 {
		return nil
	}

	period := payroll.MonthPeriod(today.AddDate(0, 0, -1), j.loc)
	periodStart := period.Start.Format("2006-01-02")

	admins, err := j.userRepo.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	slog.Info("Cron: generating payslips", "period_start", periodStart, "admins", len(admins))

	var errs []error
	for _, admin := range admins {
		result, err := j.payrollService.GeneratePayslips(ctx, payroll.GeneratePayslipsRequest{
			AdminID:     admin.ID,
			PeriodStart: periodStart,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("admin %s: %w", admin.ID, err))
			continue
		}
		slog.Info("Cron: payslips generated",
			"admin_id", admin.ID,
			"generated", result.Generated,
			"skipped", result.Skipped,
			"failures", len(result.Failures),
			"timed_out", result.TimedOut,
		)
	}

	return errors.Join(errs...)
}
