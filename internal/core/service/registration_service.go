package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

// RegistrationService enforces the registration uniqueness and capacity
// invariants. The check-then-insert sequence is serialized per event id
// through a keyed mutex, so two concurrent registrations for the same
// event can never both observe occupancy below capacity and overshoot.
// The unique (event_id, user_id) index backs the duplicate check across
// processes.
type RegistrationService struct {
	registrations ports.RegistrationRepository
	events        ports.EventRepository
	notifier      ports.Notifier
	locks         *keyedMutex
	log           zerolog.Logger
}

func NewRegistrationService(
	registrations ports.RegistrationRepository,
	events ports.EventRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		notifier:      notifier,
		locks:         newKeyedMutex(defaultLockShards),
		log:           log,
	}
}

func (s *RegistrationService) Register(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	mu := s.locks.of(eventID)
	mu.Lock()
	defer mu.Unlock()

	exists, err := s.registrations.ExistsByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	occupancy, err := s.registrations.CountActiveByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("register: count occupancy: %w", err)
	}
	if event.Capacity > 0 && occupancy >= int64(event.Capacity) {
		return nil, domain.ErrEventFull
	}

	now := time.Now().UTC()
	created, err := s.registrations.Create(ctx, &domain.Registration{
		EventID:      eventID,
		UserID:       userID,
		Status:       domain.RegistrationPending,
		RegisteredAt: now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if event.CreatedBy != "" {
		s.notifier.Notify(event.CreatedBy, domain.NotifyEventRegistration,
			fmt.Sprintf("New registration for your event %q", event.Title))
	}

	s.log.Info().
		Str("event_id", eventID).
		Str("user_id", userID).
		Int64("occupancy", occupancy+1).
		Msg("registration created")

	return created, nil
}

func (s *RegistrationService) Get(ctx context.Context, id string) (*domain.Registration, error) {
	return s.registrations.FindByID(ctx, id)
}

// UpdateStatus transitions a registration. Only the creator of the
// parent event may decide registrations, regardless of what other
// permissions the actor holds.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus, actorID string) (*domain.Registration, error) {
	registration, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.events.FindByID(ctx, registration.EventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != actorID {
		return nil, domain.ErrForbidden
	}
	if registration.Status == status {
		return registration, nil
	}

	if err := s.registrations.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update registration status: %w", err)
	}
	registration.Status = status
	registration.UpdatedAt = time.Now().UTC()

	if status == domain.RegistrationApproved || status == domain.RegistrationRejected {
		verb := "approved"
		if status == domain.RegistrationRejected {
			verb = "rejected"
		}
		s.notifier.Notify(registration.UserID, domain.NotifyRegistrationStatus,
			fmt.Sprintf("Your registration for %q was %s", event.Title, verb))
	}

	return registration, nil
}

// Delete removes a registration. Permitted for the registrant, an
// administrator, or the creator of the parent event.
func (s *RegistrationService) Delete(ctx context.Context, id, actorID string, actorAuthorities domain.AuthoritySet) error {
	registration, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return err
	}

	allowed := registration.UserID == actorID || actorAuthorities.Has(domain.RoleTag(domain.RoleAdmin))
	if !allowed {
		event, err := s.events.FindByID(ctx, registration.EventID)
		if err == nil && event.CreatedBy == actorID {
			allowed = true
		}
	}
	if !allowed {
		return domain.ErrForbidden
	}

	return s.registrations.Delete(ctx, id)
}

func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return s.registrations.ListByEvent(ctx, eventID)
}

func (s *RegistrationService) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return s.registrations.ListByUser(ctx, userID)
}
