package ports

import (
	"context"
	"time"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// CreateEventInput carries all data needed to propose a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	Date        time.Time
	Category    string
	Image       string
	Capacity    int // 0 = unlimited
}

// UpdateEventInput patches an existing event. Nil fields mean "leave
// unchanged"; this is an explicit contract, not an accident of JSON.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Location    *string
	Date        *time.Time
	Category    *string
	Image       *string
	Capacity    *int
}

// EventView is the enriched read model: the stored event plus the
// date-derived status and current occupancy.
type EventView struct {
	domain.Event
	EffectiveStatus      domain.EventStatus `json:"effective_status"`
	VolunteersRegistered int64              `json:"volunteers_registered"`
}

// ListEventsInput carries parameters for the list endpoint. AdminView
// exposes all statuses; otherwise only approved events are visible.
type ListEventsInput struct {
	AdminView bool
	Keyword   string
	Page      int
	Limit     int
}

// ListEventsResult is a page of events.
type ListEventsResult struct {
	Items      []EventView `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// EventService owns the event lifecycle state machine and its approval
// side effects.
type EventService interface {
	Create(ctx context.Context, input CreateEventInput, creatorID string) (*EventView, error)
	Get(ctx context.Context, id string) (*EventView, error)
	List(ctx context.Context, input ListEventsInput) (*ListEventsResult, error)
	ListMine(ctx context.Context, creatorID string) ([]EventView, error)
	// Update applies a content edit and resets status to pending: an
	// edited event must be re-reviewed.
	Update(ctx context.Context, id string, input UpdateEventInput) (*EventView, error)
	// Approve decides a pending event. decision must be approved or
	// rejected; any other current status fails with ErrInvalidTransition.
	Approve(ctx context.Context, id, approverID string, decision domain.EventStatus) (*EventView, error)
	Delete(ctx context.Context, id string) error
}
