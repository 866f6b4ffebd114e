package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"", DefaultPattern, false},
		{"mon,tue,wed,thu,fri", DefaultPattern, false},
		{"Monday, Saturday", []time.Weekday{time.Monday, time.Saturday}, false},
		{"mon,mon", []time.Weekday{time.Monday}, false},
		{"mon,funday", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePattern(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarize_August2024(t *testing.T) {
	cal := NewCalendar(DefaultPattern)

	// August 2024 has 22 weekdays.
	s := cal.Summarize(date(2024, 8, 1), date(2024, 8, 31), nil)

	assert.Len(t, s.WorkingDays, 22)
	assert.Equal(t, 0, s.Holidays)
}

func TestSummarize_HolidaysExcludedOnce(t *testing.T) {
	cal := NewCalendar(DefaultPattern)
	holidays := []time.Time{
		date(2024, 8, 17), // Saturday, not a working weekday
		date(2024, 8, 19), // Monday
		date(2024, 8, 19), // duplicate entry
	}

	s := cal.Summarize(date(2024, 8, 1), date(2024, 8, 31), holidays)

	assert.Len(t, s.WorkingDays, 21)
	assert.Equal(t, 1, s.Holidays)
}

func TestSummarize_SingleDayAndTimeOfDay(t *testing.T) {
	cal := NewCalendar(DefaultPattern)

	s := cal.Summarize(time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC), time.Date(2024, 8, 1, 23, 59, 0, 0, time.UTC), nil)

	assert.Len(t, s.WorkingDays, 1)
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(date(2024, 2, 15))

	assert.Equal(t, date(2024, 2, 1), first)
	assert.Equal(t, date(2024, 2, 29), last)
}

func TestCalendar_Pattern(t *testing.T) {
	cal := NewCalendar([]time.Weekday{time.Saturday, time.Monday})

	assert.Equal(t, []time.Weekday{time.Monday, time.Saturday}, cal.Pattern())
	assert.True(t, cal.IsWorkingWeekday(time.Saturday))
	assert.False(t, cal.IsWorkingWeekday(time.Sunday))
}
