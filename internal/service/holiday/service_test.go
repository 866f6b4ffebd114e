package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHolidayRepo struct {
	holiday.HolidayRepository
	created []holiday.Holiday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for _, existing := range f.created {
		if existing.AdminID == h.AdminID && existing.HolidayDate.Equal(h.HolidayDate) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
	}
	h.ID = "0190f7b2-0000-7000-8000-000000000010"
	h.CreatedAt = time.Now()
	f.created = append(f.created, h)
	return h, nil
}

func (f *fakeHolidayRepo) Delete(context.Context, string, string) error {
	return holiday.ErrHolidayNotFound
}

func TestCreateHoliday(t *testing.T) {
	repo := &fakeHolidayRepo{}
	svc := NewHolidayService(repo)

	resp, err := svc.CreateHoliday(context.Background(), holiday.CreateHolidayRequest{
		AdminID:     "admin-1",
		Date:        "2024-08-17",
		Description: "  Hari Kemerdekaan ",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-08-17", resp.Date)
	assert.Equal(t, "Saturday", resp.Weekday)
	assert.Equal(t, "Hari Kemerdekaan", resp.Description)

	_, err = svc.CreateHoliday(context.Background(), holiday.CreateHolidayRequest{AdminID: "admin-1", Date: "2024-08-17"})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)
}

func TestCreateHoliday_InvalidDate(t *testing.T) {
	svc := NewHolidayService(&fakeHolidayRepo{})

	_, err := svc.CreateHoliday(context.Background(), holiday.CreateHolidayRequest{AdminID: "admin-1", Date: "17/08/2024"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
}

func TestDeleteHoliday_NotFound(t *testing.T) {
	svc := NewHolidayService(&fakeHolidayRepo{})

	assert.ErrorIs(t, svc.DeleteHoliday(context.Background(), "x", "admin-1"), holiday.ErrHolidayNotFound)
	assert.ErrorIs(t, svc.DeleteHoliday(context.Background(), "0190f7b2-0000-7000-8000-000000000010", "admin-1"), holiday.ErrHolidayNotFound)
}
