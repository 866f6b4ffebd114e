package http

import (
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryModelHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type salaryModelHandlerImpl struct {
	salaryModelService salary.SalaryModelService
}

func NewSalaryModelHandler(salaryModelService salary.SalaryModelService) SalaryModelHandler {
	return &salaryModelHandlerImpl{salaryModelService: salaryModelService}
}

func (h *salaryModelHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	var req salary.CreateSalaryModelRequest
	if !decodeJSON(w, r, &req, "CreateSalaryModel") {
		return
	}
	req.AdminID = claims.AdminID

	result, err := h.salaryModelService.CreateSalaryModel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary model created", result)
}

func (h *salaryModelHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.salaryModelService.ListSalaryModels(r.Context(), claims.AdminID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryModelHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.salaryModelService.GetSalaryModel(r.Context(), chi.URLParam(r, "id"), claims.AdminID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryModelHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	var req salary.UpdateSalaryModelRequest
	if !decodeJSON(w, r, &req, "UpdateSalaryModel") {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.AdminID = claims.AdminID

	result, err := h.salaryModelService.UpdateSalaryModel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary model updated", result)
}

func (h *salaryModelHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	if err := h.salaryModelService.DeleteSalaryModel(r.Context(), chi.URLParam(r, "id"), claims.AdminID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary model deleted", nil)
}
