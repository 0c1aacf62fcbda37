package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// NotificationService exposes the recipient-facing read side and the
// write path used by the async delivery workers.
type NotificationService interface {
	Create(ctx context.Context, userID, typeTag, message string) (*domain.Notification, error)
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error)
}
