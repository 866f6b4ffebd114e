package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/notification"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	notification.Repository

	mu       sync.Mutex
	stored   []notification.Notification
	lastPage [2]int
	unread   int64
}

func (f *fakeRepo) CreateBatch(_ context.Context, ns []notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, ns...)
	return nil
}

func (f *fakeRepo) ListByRecipient(_ context.Context, recipientID string, page, pageSize int, _ bool) ([]notification.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPage = [2]int{page, pageSize}
	var out []notification.Notification
	for _, n := range f.stored {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) CountUnread(context.Context, string) (int64, error) {
	return f.unread, nil
}

func (f *fakeRepo) snapshot() []notification.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notification.Notification(nil), f.stored...)
}

type recordingHub struct {
	mu     sync.Mutex
	events []sse.Event
}

func (h *recordingHub) Publish(userID string, e sse.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e.UserID = userID
	h.events = append(h.events, e)
}

func newTestService(repo *fakeRepo, hub *recordingHub) notification.Service {
	return NewNotificationService(repo, hub, Config{
		BatchSize:     10,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     10,
	})
}

func TestPublish_PushesLiveAndPersistsInboxTypes(t *testing.T) {
	repo := &fakeRepo{}
	hub := &recordingHub{}
	svc := newTestService(repo, hub)

	svc.Publish("admin-1", sse.Event{Event: sse.EventAttendanceClockIn, Data: map[string]string{"attendance_id": "a1"}})
	svc.Publish("emp-1", sse.Event{Event: sse.EventPayslipReady, Data: map[string]string{"period_start_date": "2024-08-01"}})
	svc.Publish("emp-2", sse.Event{Event: sse.EventAttendanceOpenReminder, Data: struct {
		CheckInTime string `json:"check_in_time"`
		OpenHours   int    `json:"open_hours"`
	}{"2024-08-01T08:00:00+07:00", 13}})
	svc.Stop()

	assert.Len(t, hub.events, 3, "every event goes live")

	stored := repo.snapshot()
	require.Len(t, stored, 2, "clock events are not kept in the inbox")

	ready := stored[0]
	assert.Equal(t, "emp-1", ready.RecipientID)
	assert.Equal(t, notification.TypePayslipReady, ready.Type)
	assert.Equal(t, "Your payslip is ready", ready.Title)
	assert.Contains(t, ready.Message, "2024-08-01")
	assert.Equal(t, "2024-08-01", ready.Data["period_start_date"])
	assert.True(t, validator.IsValidUUID(ready.ID))

	reminder := stored[1]
	assert.Equal(t, notification.TypeAttendanceOpenReminder, reminder.Type)
	assert.Contains(t, reminder.Message, "13 hours")
}

func TestPublish_AfterStopStillPushesLive(t *testing.T) {
	repo := &fakeRepo{}
	hub := &recordingHub{}
	svc := newTestService(repo, hub)
	svc.Stop()
	svc.Stop()

	svc.Publish("emp-1", sse.Event{Event: sse.EventPayslipReady, Data: map[string]string{}})

	assert.Len(t, hub.events, 1)
	assert.Empty(t, repo.snapshot())
}

func TestPublish_NonObjectPayloadIsNotStored(t *testing.T) {
	repo := &fakeRepo{}
	hub := &recordingHub{}
	svc := newTestService(repo, hub)

	svc.Publish("emp-1", sse.Event{Event: sse.EventPayslipReady, Data: "not an object"})
	svc.Stop()

	assert.Len(t, hub.events, 1)
	assert.Empty(t, repo.snapshot())
}

func TestList_NormalizesPaging(t *testing.T) {
	repo := &fakeRepo{unread: 3}
	svc := newTestService(repo, &recordingHub{})
	defer svc.Stop()

	resp, err := svc.List(context.Background(), notification.ListRequest{RecipientID: "emp-1", Page: 0, PageSize: 1000})
	require.NoError(t, err)

	assert.Equal(t, [2]int{1, 20}, repo.lastPage)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Equal(t, int64(3), resp.UnreadCount)
	assert.NotNil(t, resp.Notifications)
}

func TestMarkAsRead_Validation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &recordingHub{})
	defer svc.Stop()

	_, err := svc.MarkAsRead(context.Background(), notification.MarkAsReadRequest{RecipientID: "emp-1"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "notification_ids")

	_, err = svc.MarkAsRead(context.Background(), notification.MarkAsReadRequest{RecipientID: "emp-1", NotificationIDs: []string{"nope"}})
	require.ErrorAs(t, err, &verrs)
}

func TestDelete_InvalidIDIsNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &recordingHub{})
	defer svc.Stop()

	err := svc.Delete(context.Background(), "not-a-uuid", "emp-1")
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}
