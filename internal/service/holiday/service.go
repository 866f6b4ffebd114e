package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
)

type holidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &holidayServiceImpl{holidayRepo: holidayRepo}
}

// CreateHoliday implements holiday.HolidayService.
func (s *holidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		AdminID:     req.AdminID,
		HolidayDate: date,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayExists) {
			return holiday.HolidayResponse{}, err
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	slog.Info("Holiday created", "admin_id", req.AdminID, "date", req.Date)
	return holiday.ToResponse(created), nil
}

// ListHolidays implements holiday.HolidayService.
func (s *holidayServiceImpl) ListHolidays(ctx context.Context, adminID string, year int) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.ListByYear(ctx, adminID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.ToResponse(h))
	}
	return responses, nil
}

// DeleteHoliday implements holiday.HolidayService.
func (s *holidayServiceImpl) DeleteHoliday(ctx context.Context, id string, adminID string) error {
	if !validator.IsValidUUID(id) {
		return holiday.ErrHolidayNotFound
	}
	if err := s.holidayRepo.Delete(ctx, id, adminID); err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}
