package holiday

import (
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	AdminID     string `json:"-"`
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if len(r.Description) > 255 {
		errs.Add("description", "description must not exceed 255 characters")
	}

	return errs.Err()
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        h.HolidayDate.Format("2006-01-02"),
		Weekday:     h.HolidayDate.Weekday().String(),
		Description: h.Description,
		CreatedAt:   h.CreatedAt.Format(time.RFC3339),
	}
}
