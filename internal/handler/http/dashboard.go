package http

import (
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Admin(w http.ResponseWriter, r *http.Request)
	Employee(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Admin handles GET /dashboard/admin?start=&end=
func (h *dashboardHandlerImpl) Admin(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	req := dashboard.AdminDashboardRequest{
		AdminID:   claims.AdminID,
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}

	result, err := h.dashboardService.GetAdminDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Employee handles GET /dashboard/employee?month=YYYY-MM
func (h *dashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	req := dashboard.EmployeeDashboardRequest{
		EmployeeID: claims.EmployeeID,
		AdminID:    claims.AdminID,
		Month:      r.URL.Query().Get("month"),
	}

	result, err := h.dashboardService.GetEmployeeDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
