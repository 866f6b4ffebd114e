package notification

import (
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
)

// NotificationType is the SSE event name the notification was raised from.
type NotificationType string

const (
	TypePayslipGenerated       NotificationType = sse.EventPayslipGenerated
	TypePayslipReady           NotificationType = sse.EventPayslipReady
	TypeAttendanceOpenReminder NotificationType = sse.EventAttendanceOpenReminder
)

var titles = map[NotificationType]string{
	TypePayslipGenerated:       "Payslips generated",
	TypePayslipReady:           "Your payslip is ready",
	TypeAttendanceOpenReminder: "You are still clocked in",
}

// Persisted reports whether events of this type are kept in the inbox.
// Clock in/out events are live-only.
func (t NotificationType) Persisted() bool {
	_, ok := titles[t]
	return ok
}

// Title returns the inbox headline for the type.
func (t NotificationType) Title() string {
	return titles[t]
}

// Notification is one inbox entry of a user.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
