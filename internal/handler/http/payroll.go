package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Generate implements PayrollHandler. Per-employee failures are part of a
// successful response; only a rejected request or a store outage fails it.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	var req payroll.GeneratePayslipsRequest
	if !decodeJSON(w, r, &req, "GeneratePayslips") {
		return
	}
	req.AdminID = claims.AdminID

	result, err := h.payrollService.GeneratePayslips(r.Context(), req)
	if err != nil {
		slog.Error("Payslip generation failed", "admin_id", claims.AdminID, "error", err)
		response.HandleError(w, err)
		return
	}

	message := "Payslips generated"
	if result.TimedOut {
		message = payroll.ErrGenerationTimedOut.Error()
	}
	response.SuccessWithMessage(w, message, result)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	filter := payroll.PayslipFilter{
		AdminID: claims.AdminID,
		Period:  r.URL.Query().Get("period"),
	}

	result, err := h.payrollService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetPayslip(r.Context(), chi.URLParam(r, "id"), claims.AdminID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine implements PayrollHandler.
func (h *payrollHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ListMyPayslips(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMine implements PayrollHandler.
func (h *payrollHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetMyPayslip(r.Context(), chi.URLParam(r, "id"), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
