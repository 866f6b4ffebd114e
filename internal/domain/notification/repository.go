package notification

import (
	"context"
)

// Repository scopes every read and write by recipient.
type Repository interface {
	CreateBatch(ctx context.Context, notifications []Notification) error
	ListByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]Notification, int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID string) (int64, error)
	MarkAllAsRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id string, recipientID string) error
}
