package http

import (
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SalaryEstimate(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	payrollService  payroll.PayrollService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, payrollService payroll.PayrollService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		payrollService:  payrollService,
	}
}

// List implements EmployeeHandler.
func (e *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	filter := employee.EmployeeFilter{
		Search: queryPtr(r, "search"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}

	result, err := e.employeeService.ListEmployees(r.Context(), filter, claims.AdminID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements EmployeeHandler.
func (e *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := e.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"), claims.AdminID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements EmployeeHandler.
func (e *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, &req, "UpdateEmployee") {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.AdminID = claims.AdminID

	result, err := e.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

// SalaryEstimate implements EmployeeHandler.
func (e *employeeHandlerImpl) SalaryEstimate(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	req := payroll.EstimateSalaryRequest{
		AdminID:    claims.AdminID,
		EmployeeID: chi.URLParam(r, "id"),
		StartDate:  r.URL.Query().Get("start"),
		EndDate:    r.URL.Query().Get("end"),
	}

	result, err := e.payrollService.EstimateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
