package http

import (
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/office"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
)

type OfficeHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type officeHandlerImpl struct {
	officeService office.OfficeService
}

func NewOfficeHandler(officeService office.OfficeService) OfficeHandler {
	return &officeHandlerImpl{officeService: officeService}
}

func (h *officeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.officeService.GetOffice(r.Context(), claims.AdminID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *officeHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	var req office.UpsertOfficeRequest
	if !decodeJSON(w, r, &req, "UpsertOffice") {
		return
	}
	req.AdminID = claims.AdminID

	result, err := h.officeService.UpsertOffice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location saved", result)
}
