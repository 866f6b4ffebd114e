package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/notification"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    sse.Publisher
	config Config
	now    func() time.Time

	queue    chan notification.Notification
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates the inbox and starts its background workers.
func NewNotificationService(repo notification.Repository, hub sse.Publisher, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		now:    time.Now,
		queue:  make(chan notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval.String(),
	)

	return s
}

// worker batches queued notifications and writes them on size or interval.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			slog.Error("Failed to store notifications", "worker", id, "count", len(batch), "error", err)
		} else {
			slog.Debug("Stored notifications", "worker", id, "count", len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case n := <-s.queue:
			batch = append(batch, n)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			for {
				select {
				case n := <-s.queue:
					batch = append(batch, n)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Publish implements sse.Publisher. The live push never waits on storage.
func (s *service) Publish(userID string, event sse.Event) {
	s.hub.Publish(userID, event)

	t := notification.NotificationType(event.Event)
	if !t.Persisted() {
		return
	}

	n, err := s.build(userID, t, event.Data)
	if err != nil {
		slog.Warn("Failed to build notification", "type", t, "user_id", userID, "error", err)
		return
	}

	select {
	case <-s.stopCh:
		slog.Warn("Notification dropped after stop", "type", t, "user_id", userID)
		return
	default:
	}

	select {
	case s.queue <- n:
	default:
		slog.Warn("Notification dropped", "type", t, "user_id", userID, "error", notification.ErrQueueFull)
	}
}

func (s *service) build(userID string, t notification.NotificationType, payload interface{}) (notification.Notification, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to generate id: %w", err)
	}

	data, err := toMap(payload)
	if err != nil {
		return notification.Notification{}, err
	}

	return notification.Notification{
		ID:          id.String(),
		RecipientID: userID,
		Type:        t,
		Title:       t.Title(),
		Message:     messageFor(t, data),
		Data:        data,
		CreatedAt:   s.now(),
	}, nil
}

func toMap(payload interface{}) (map[string]interface{}, error) {
	if payload == nil {
		return nil, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("payload is not an object: %w", err)
	}
	return out, nil
}

func messageFor(t notification.NotificationType, data map[string]interface{}) string {
	switch t {
	case notification.TypePayslipGenerated:
		return fmt.Sprintf("%v payslips generated for the period starting %v", data["generated"], data["period_start"])
	case notification.TypePayslipReady:
		return fmt.Sprintf("Your payslip for the period starting %v is available", data["period_start_date"])
	case notification.TypeAttendanceOpenReminder:
		return fmt.Sprintf("You clocked in at %v and have been open for %v hours", data["check_in_time"], data["open_hours"])
	}
	return t.Title()
}

// List implements notification.Service.
func (s *service) List(ctx context.Context, req notification.ListRequest) (notification.ListResponse, error) {
	req.Normalize()

	items, total, err := s.repo.ListByRecipient(ctx, req.RecipientID, req.Page, req.PageSize, req.UnreadOnly)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.repo.CountUnread(ctx, req.RecipientID)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(items))
	for i, n := range items {
		responses[i] = notification.ToResponse(n)
	}

	return notification.ListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}, nil
}

// UnreadCount implements notification.Service.
func (s *service) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// MarkAsRead implements notification.Service.
func (s *service) MarkAsRead(ctx context.Context, req notification.MarkAsReadRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, req.RecipientID)
}

// MarkAllAsRead implements notification.Service.
func (s *service) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}

// Delete implements notification.Service.
func (s *service) Delete(ctx context.Context, id string, recipientID string) error {
	if !validator.IsValidUUID(id) {
		return notification.ErrNotificationNotFound
	}
	return s.repo.Delete(ctx, id, recipientID)
}

// Stop implements notification.Service.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
