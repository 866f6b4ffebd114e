// Package timeround normalizes attendance timestamps to 10 minute boundaries.
//
// Clock-in always rounds later and clock-out always rounds earlier, so rounding
// never credits time the employee did not work.
package timeround

import "time"

// Step is the rounding granularity.
const Step = 10 * time.Minute

// RoundForClockOut rounds t down to the previous boundary on t's wall clock.
// Seconds and sub-seconds are dropped.
func RoundForClockOut(t time.Time) time.Time {
	minute := (t.Minute() / 10) * 10
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

// RoundForClockIn rounds t up to the next boundary. A timestamp already on a
// boundary is returned unchanged; minute 60 carries into the next hour.
func RoundForClockIn(t time.Time) time.Time {
	floor := RoundForClockOut(t)
	if floor.Equal(t) {
		return floor
	}
	return floor.Add(Step)
}

// IsBoundary reports whether t is already rounded.
func IsBoundary(t time.Time) bool {
	return RoundForClockOut(t).Equal(t)
}
