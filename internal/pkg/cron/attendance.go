package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
)

// OpenSessionReminder is the payload of attendance.open_reminder.
type OpenSessionReminder struct {
	AttendanceID string `json:"attendance_id"`
	CheckInTime  string `json:"check_in_time"`
	OpenHours    int    `json:"open_hours"`
}

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	publisher      sse.Publisher
	staleAfter     time.Duration
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	publisher sse.Publisher,
	staleAfter time.Duration,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		publisher:      publisher,
		staleAfter:     staleAfter,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "remind_open_attendance_sessions",
		Interval: time.Hour,
		Timeout:  time.Minute,
		Fn:       j.RemindOpenSessions,
	})
}

// RemindOpenSessions notifies every employee whose record has been open for
// longer than staleAfter. Records are never closed automatically.
func (j *AttendanceJobs) RemindOpenSessions(ctx context.Context) error {
	now := j.now()
	stale, err := j.attendanceRepo.ListStaleOpenSessions(ctx, now.Add(-j.staleAfter))
	if err != nil {
		return fmt.Errorf("failed to list stale sessions: %w", err)
	}

	if len(stale) == 0 {
		slog.Debug("Cron: no open sessions to remind")
		return nil
	}

	for _, session := range stale {
		j.publisher.Publish(session.EmployeeID, sse.Event{
			UserID: session.EmployeeID,
			Event:  sse.EventAttendanceOpenReminder,
			Data: OpenSessionReminder{
				AttendanceID: session.ID,
				CheckInTime:  session.CheckInTime.In(j.loc).Format(time.RFC3339),
				OpenHours:    int(now.Sub(session.CheckInTime).Hours()),
			},
		})
	}

	slog.Info("Cron: reminded employees with open sessions", "count", len(stale))
	return nil
}
