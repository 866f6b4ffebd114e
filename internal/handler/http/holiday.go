package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
	loc            *time.Location
}

func NewHolidayHandler(holidayService holiday.HolidayService, loc *time.Location) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService, loc: loc}
}

func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	var req holiday.CreateHolidayRequest
	if !decodeJSON(w, r, &req, "CreateHoliday") {
		return
	}
	req.AdminID = claims.AdminID

	result, err := h.holidayService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", result)
}

// List returns the holidays of ?year=, defaulting to the current year.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	year := queryInt(r, "year", time.Now().In(h.loc).Year())

	result, err := h.holidayService.ListHolidays(r.Context(), claims.AdminID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	if err := h.holidayService.DeleteHoliday(r.Context(), chi.URLParam(r, "id"), claims.AdminID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
