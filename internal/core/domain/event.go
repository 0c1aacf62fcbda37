package domain

import (
	"errors"
	"time"
)

// EventStatus represents the lifecycle state of an event.
type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventRejected  EventStatus = "rejected"
	EventCompleted EventStatus = "completed"
)

// DefaultEventImage is substituted when an event is created without one.
const DefaultEventImage = "https://images.unsplash.com/photo-1559027615-cd4628902d4a"

// validTransitions defines the allowed state machine transitions.
// Completion is derived from the event date, never stored explicitly.
var validTransitions = map[EventStatus][]EventStatus{
	EventPending: {EventApproved, EventRejected},
}

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// CanTransitionTo reports whether a transition from the current status
// to next is valid.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Event is the aggregate gating volunteer registrations.
type Event struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	Title       string      `json:"title" bson:"title"`
	Description string      `json:"description" bson:"description"`
	Location    string      `json:"location" bson:"location"`
	Date        time.Time   `json:"date" bson:"date"`
	Category    string      `json:"category" bson:"category"`
	Image       string      `json:"image" bson:"image"`
	Capacity    int         `json:"volunteers_needed" bson:"volunteers_needed"` // 0 = unlimited
	Status      EventStatus `json:"status" bson:"status"`
	CreatedBy   string      `json:"created_by" bson:"created_by"`
	ApprovedBy  string      `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

// EffectiveStatus derives "completed" for approved events whose day has
// fully elapsed. The stored status stays "approved".
func (e *Event) EffectiveStatus(now time.Time) EventStatus {
	if e.Status != EventApproved || e.Date.IsZero() {
		return e.Status
	}
	endOfDay := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 23, 59, 59, 0, e.Date.Location())
	if now.After(endOfDay) {
		return EventCompleted
	}
	return EventApproved
}
