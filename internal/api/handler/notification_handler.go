package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications, newest first.
//
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Notification
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationService.List(c.Request().Context(), subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notifications)
}

// ListUnread returns the caller's unread notifications.
//
// @Summary      List my unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Notification
// @Router       /v1/notifications/unread [get]
func (h *NotificationHandler) ListUnread(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationService.ListUnread(c.Request().Context(), subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notifications)
}

// UnreadCount returns how many unread notifications the caller has.
//
// @Summary      Count my unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Router       /v1/notifications/unread/count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.UnreadCount(c.Request().Context(), subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// MarkRead marks one of the caller's notifications as read. Marking
// someone else's notification yields 404, not 403, to avoid leaking
// their existence.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  domain.Notification
// @Failure      404  {object}  map[string]string
// @Router       /v1/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	notification, err := h.notificationService.MarkRead(c.Request().Context(), c.Param("id"), subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notification)
}
