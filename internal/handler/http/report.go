package http

import (
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request)
	GetPayrollSummaryReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// GetMonthlyAttendanceReport handles GET /reports/attendance?month=YYYY-MM
func (h *reportHandlerImpl) GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GenerateMonthlyAttendanceReport(r.Context(), report.MonthlyAttendanceReportRequest{
		AdminID: claims.AdminID,
		Month:   r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayrollSummaryReport handles GET /reports/payroll?month=YYYY-MM
func (h *reportHandlerImpl) GetPayrollSummaryReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GeneratePayrollSummaryReport(r.Context(), report.PayrollSummaryReportRequest{
		AdminID: claims.AdminID,
		Month:   r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
