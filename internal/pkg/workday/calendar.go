package workday

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPattern is Monday through Friday.
var DefaultPattern = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// Calendar answers which dates are working days for an organization.
// Holidays are supplied per call because they are owned by each admin.
type Calendar struct {
	workdays map[time.Weekday]bool
}

// NewCalendar builds a calendar from the given weekly pattern.
func NewCalendar(pattern []time.Weekday) Calendar {
	c := Calendar{workdays: make(map[time.Weekday]bool, len(pattern))}
	for _, d := range pattern {
		c.workdays[d] = true
	}
	return c
}

// ParsePattern parses a comma separated weekday list such as "mon,tue,wed".
func ParsePattern(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultPattern, nil
	}

	names := map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
		"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	}

	seen := make(map[time.Weekday]bool)
	var pattern []time.Weekday
	for _, part := range strings.Split(s, ",") {
		key := strings.ToLower(strings.TrimSpace(part))
		if len(key) > 3 {
			key = key[:3]
		}
		d, ok := names[key]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		if !seen[d] {
			seen[d] = true
			pattern = append(pattern, d)
		}
	}
	return pattern, nil
}

// IsWorkingWeekday reports whether the weekday is part of the weekly pattern.
func (c Calendar) IsWorkingWeekday(d time.Weekday) bool {
	return c.workdays[d]
}

// Pattern returns the configured weekdays in Sunday-first order.
func (c Calendar) Pattern() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if c.workdays[d] {
			out = append(out, d)
		}
	}
	return out
}

// Summary describes the working days of a date range.
type Summary struct {
	WorkingDays []time.Time
	// Holidays counts holidays that fell on a pattern weekday.
	Holidays int
}

// Summarize walks every date in [from, to] (inclusive, by calendar date) and
// returns the working days, excluding holidays exactly once.
func (c Calendar) Summarize(from, to time.Time, holidays []time.Time) Summary {
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[DateKey(h)] = true
	}

	var s Summary
	for d := DateOf(from); !d.After(DateOf(to)); d = d.AddDate(0, 0, 1) {
		if !c.workdays[d.Weekday()] {
			continue
		}
		if holidaySet[DateKey(d)] {
			s.Holidays++
			continue
		}
		s.WorkingDays = append(s.WorkingDays, d)
	}
	return s
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey formats the calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}
