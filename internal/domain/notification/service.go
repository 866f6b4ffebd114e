package notification

import (
	"context"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/sse"
)

// Service is the user's inbox. It is also the sse.Publisher handed to the
// attendance and payroll services: every event goes live to the hub and
// persisted types are queued for the inbox.
type Service interface {
	sse.Publisher

	List(ctx context.Context, req ListRequest) (ListResponse, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, req MarkAsReadRequest) (int64, error)
	MarkAllAsRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id string, recipientID string) error

	// Stop flushes queued notifications and stops the workers.
	Stop()
}
