package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/config"
	appHTTP "github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/email"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/workday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/presensi-payroll-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/holiday"
	invitationService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/invitation"
	notificationService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/notification"
	officeService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/office"
	payrollService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/report"
	salaryService "github.com/cmlabs-hris/presensi-payroll-go/internal/service/salary"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Pool.Close()

	if cfg.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := db.Migrate(migrateCtx)
		cancel()
		if err != nil {
			return err
		}
		slog.Info("database schema applied")
	}

	loc := cfg.Location()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("error creating jwt service: %w", err)
	}

	hub := sse.NewHub()
	defer hub.Close()

	var mailer email.EmailService
	if cfg.SMTP.Enabled {
		mailer, err = email.NewEmailService(cfg.SMTP)
		if err != nil {
			return fmt.Errorf("error creating email service: %w", err)
		}
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryModelRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	inviteRepo := postgresql.NewInviteCodeRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	// Service events go live through the hub. Inbox types are stored as well.
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notificationSvc.Stop()
	calendar := workday.NewCalendar(cfg.Payroll.WorkDays)

	officeSvc := officeService.NewOfficeService(officeRepo, cfg.Office)
	invitationSvc := invitationService.NewInvitationService(inviteRepo, cfg.Invitation.CodeTTL)
	authSvc := serviceAuth.NewAuthService(tx, userRepo, employeeRepo, invitationSvc, JWTService)
	salarySvc := salaryService.NewSalaryModelService(salaryRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, salaryRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo, officeSvc, notificationSvc, attendanceService.Options{
		Location:     loc,
		AllowReentry: cfg.Attendance.AllowReentry,
	})
	payrollSvc := payrollService.NewPayrollService(payslipRepo, employeeRepo, salaryRepo, attendanceRepo, holidayRepo, notificationSvc, mailer, payrollService.Options{
		Location:    loc,
		Calendar:    calendar,
		MaxParallel: cfg.Payroll.MaxParallel,
		Timeout:     cfg.Payroll.Timeout,
	})
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, attendanceRepo, attendanceSvc, payrollSvc, loc, nil)
	reportSvc := reportService.NewReportService(reportRepo, holidayRepo, employeeRepo, calendar, loc)

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		SalaryModel:  appHTTP.NewSalaryModelHandler(salarySvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc, payrollSvc),
		Invitation:   appHTTP.NewInvitationHandler(invitationSvc),
		Holiday:      appHTTP.NewHolidayHandler(holidaySvc, loc),
		Office:       appHTTP.NewOfficeHandler(officeSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Events:       appHTTP.NewEventHandler(JWTService, hub),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, notificationSvc, cfg.Attendance.StaleAfter, loc).RegisterJobs(scheduler)
	if cfg.Payroll.AutoGenerate {
		cron.NewPayrollJobs(userRepo, payrollSvc, loc).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	// SSE streams only return once the hub is closed.
	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
