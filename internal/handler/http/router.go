package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/config"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	SalaryModel  SalaryModelHandler
	Employee     EmployeeHandler
	Invitation   InvitationHandler
	Holiday      HolidayHandler
	Office       OfficeHandler
	Payroll      PayrollHandler
	Dashboard    DashboardHandler
	Events       EventHandler
	Notification NotificationHandler
	Report       ReportHandler
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presensi-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
		// The event stream stays open for minutes; log only its start.
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/events" && respStatus < 400
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/register/employee", h.Auth.RegisterEmployee)
			r.Post("/login", h.Auth.Login)
			r.With(
				jwtauth.Verifier(JWTService.JWTAuth()),
				middleware.AuthRequired(JWTService.JWTAuth()),
			).Post("/sse-token", h.Auth.SSEToken)
		})

		// SSE authenticates with a short-lived ?token=
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Put("/read", h.Notification.MarkAsRead)
				r.Put("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
			})

			// Employee only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireEmployee)

				r.Get("/attendance/status", h.Attendance.Status)
				r.Post("/attendance/clock", h.Attendance.Clock)
				r.Post("/attendance/clock-in", h.Attendance.ClockIn)
				r.Post("/attendance/clock-out", h.Attendance.ClockOut)
				r.Get("/attendance/my", h.Attendance.GetMyAttendance)
				r.Get("/payslips/my", h.Payroll.ListMine)
				r.Get("/payslips/my/{id}", h.Payroll.GetMine)
				r.Get("/dashboard/employee", h.Dashboard.Employee)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/attendance", h.Attendance.List)
				r.Post("/attendance", h.Attendance.Create)
				r.Put("/attendance/{id}", h.Attendance.Update)
				r.Delete("/attendance/{id}", h.Attendance.Delete)

				r.Route("/salary-models", func(r chi.Router) {
					r.Get("/", h.SalaryModel.List)
					r.Post("/", h.SalaryModel.Create)
					r.Get("/{id}", h.SalaryModel.Get)
					r.Put("/{id}", h.SalaryModel.Update)
					r.Delete("/{id}", h.SalaryModel.Delete)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Get("/{id}/salary-estimate", h.Employee.SalaryEstimate)
				})

				r.Post("/invite-codes", h.Invitation.Create)

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", h.Holiday.List)
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})

				r.Get("/office", h.Office.Get)
				r.Put("/office", h.Office.Upsert)

				r.Post("/payslips/generate", h.Payroll.Generate)
				r.Get("/payslips", h.Payroll.List)
				r.Get("/payslips/{id}", h.Payroll.Get)

				r.Get("/dashboard/admin", h.Dashboard.Admin)

				r.Get("/reports/attendance", h.Report.GetMonthlyAttendanceReport)
				r.Get("/reports/payroll", h.Report.GetPayrollSummaryReport)
			})
		})
	})
	return r
}
