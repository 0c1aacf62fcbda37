package domain

import (
	"errors"
	"time"
)

// RegistrationStatus represents the state of a volunteer's registration.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationApproved  RegistrationStatus = "approved"
	RegistrationRejected  RegistrationStatus = "rejected"
	RegistrationCompleted RegistrationStatus = "completed"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrEventFull            = errors.New("event is full")
	ErrForbidden            = errors.New("access forbidden")
)

// Registration links a volunteer to an event. At most one registration
// exists per (event, user) pair; registrations in any state other than
// rejected count against the event's capacity.
type Registration struct {
	ID           string             `json:"id" bson:"_id,omitempty"`
	EventID      string             `json:"event_id" bson:"event_id"`
	UserID       string             `json:"user_id" bson:"user_id"`
	Status       RegistrationStatus `json:"status" bson:"status"`
	RegisteredAt time.Time          `json:"registered_at" bson:"registered_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// CountsAgainstCapacity reports whether this registration occupies a slot.
func (r *Registration) CountsAgainstCapacity() bool {
	return r.Status != RegistrationRejected
}
