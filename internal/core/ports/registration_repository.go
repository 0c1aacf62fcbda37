package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// RegistrationRepository defines persistence for event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, r *domain.Registration) (*domain.Registration, error)
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	ExistsByEventAndUser(ctx context.Context, eventID, userID string) (bool, error)
	// CountActiveByEvent counts registrations occupying a capacity slot,
	// i.e. all registrations not in the rejected state.
	CountActiveByEvent(ctx context.Context, eventID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error
	Delete(ctx context.Context, id string) error
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
}
