package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// ListEventsFilter carries all query parameters for listing events.
type ListEventsFilter struct {
	// Statuses restricts results to the given statuses. Empty = all
	// (admin/manager view). The public view passes {approved}.
	Statuses  []domain.EventStatus
	CreatedBy string // optional: scope to a creator
	Keyword   string // optional: partial match on title or description
	Page      int    // 1-based
	Limit     int    // capped by the service
}

// EventRepository defines persistence for events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// Update replaces the mutable fields of an existing event document.
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	// List returns a page of events newest-first and the total count.
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, int64, error)
}
