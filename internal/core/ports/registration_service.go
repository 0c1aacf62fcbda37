package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// RegistrationService enforces uniqueness and capacity invariants on
// event registrations. For any event with capacity C > 0, the number of
// non-rejected registrations never exceeds C, even under concurrent
// registration attempts.
type RegistrationService interface {
	Register(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	Get(ctx context.Context, id string) (*domain.Registration, error)
	// UpdateStatus transitions a registration. Only the parent event's
	// creator may do this; the new status must differ from the current.
	UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus, actorID string) (*domain.Registration, error)
	// Delete removes a registration. Permitted for the registrant, the
	// parent event's creator, or an administrator.
	Delete(ctx context.Context, id, actorID string, actorAuthorities domain.AuthoritySet) error
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
}
