package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

// NotificationService handles the recipient-facing read side and the
// write path used by the delivery workers.
type NotificationService struct {
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, log: log}
}

func (s *NotificationService) Create(ctx context.Context, userID, typeTag, message string) (*domain.Notification, error) {
	return s.notifications.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      typeTag,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) ListUnread(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.notifications.ListUnreadByUser(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error) {
	return s.notifications.MarkRead(ctx, id, userID)
}
