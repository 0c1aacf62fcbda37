package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// NotificationRepository defines persistence for user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead flips the read flag; scoped to the recipient so users
	// cannot acknowledge someone else's notification.
	MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error)
}

// Notifier delivers a notification to a user. Fire-and-forget: delivery
// failures are logged by the implementation, never surfaced to callers.
type Notifier interface {
	Notify(userID, typeTag, message string)
}
