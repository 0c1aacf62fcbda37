package domain

import (
	"errors"
	"time"
)

// Notification type tags.
const (
	NotifyEventStatus        = "event_status"
	NotifyEventRegistration  = "event_registration"
	NotifyRegistrationStatus = "registration_status"
	NotifySystem             = "system"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a best-effort, write-and-forget message to a user.
type Notification struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Type      string    `json:"type" bson:"type"`
	Message   string    `json:"message" bson:"message"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
