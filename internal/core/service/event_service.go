package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EventService owns the event lifecycle state machine and the side
// effects of approval.
type EventService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	channels      ports.ChannelRepository
	posts         ports.PostRepository
	notifier      ports.Notifier
	log           zerolog.Logger
}

func NewEventService(
	events ports.EventRepository,
	registrations ports.RegistrationRepository,
	channels ports.ChannelRepository,
	posts ports.PostRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *EventService {
	return &EventService{
		events:        events,
		registrations: registrations,
		channels:      channels,
		posts:         posts,
		notifier:      notifier,
		log:           log,
	}
}

// Create proposes a new event. Every event starts pending review.
func (s *EventService) Create(ctx context.Context, input ports.CreateEventInput, creatorID string) (*ports.EventView, error) {
	now := time.Now().UTC()
	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Date:        input.Date,
		Category:    input.Category,
		Image:       input.Image,
		Capacity:    input.Capacity,
		Status:      domain.EventPending,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if event.Image == "" {
		event.Image = domain.DefaultEventImage
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", created.ID).Str("created_by", creatorID).Msg("event proposed")
	return s.toView(ctx, created), nil
}

func (s *EventService) Get(ctx context.Context, id string) (*ports.EventView, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, event), nil
}

func (s *EventService) List(ctx context.Context, input ports.ListEventsInput) (*ports.ListEventsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := ports.ListEventsFilter{
		Keyword: input.Keyword,
		Page:    page,
		Limit:   limit,
	}
	// The public view is an authorization-shaped filter: only approved
	// events are visible outside the admin/manager surface.
	if !input.AdminView {
		filter.Statuses = []domain.EventStatus{domain.EventApproved}
	}

	events, total, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	items := make([]ports.EventView, 0, len(events))
	for _, e := range events {
		items = append(items, *s.toView(ctx, e))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListEventsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *EventService) ListMine(ctx context.Context, creatorID string) ([]ports.EventView, error) {
	events, _, err := s.events.List(ctx, ports.ListEventsFilter{CreatedBy: creatorID, Page: 1, Limit: maxPageSize})
	if err != nil {
		return nil, fmt.Errorf("list own events: %w", err)
	}
	items := make([]ports.EventView, 0, len(events))
	for _, e := range events {
		items = append(items, *s.toView(ctx, e))
	}
	return items, nil
}

// Update applies a content edit. Nil input fields leave the stored value
// untouched. Any edit resets status to pending: an edited event must be
// re-reviewed before it is public again.
func (s *EventService) Update(ctx context.Context, id string, input ports.UpdateEventInput) (*ports.EventView, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Category != nil {
		event.Category = *input.Category
	}
	if input.Image != nil {
		event.Image = *input.Image
	}
	if input.Capacity != nil {
		event.Capacity = *input.Capacity
	}
	event.Status = domain.EventPending
	event.ApprovedBy = ""
	event.ApprovedAt = nil
	event.UpdatedAt = time.Now().UTC()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.log.Info().Str("event_id", id).Msg("event updated, back to pending review")
	return s.toView(ctx, event), nil
}

// Approve decides a pending event. On approval the approver and the
// approval time are stamped together, the discussion channel is seeded
// idempotently, and the creator is notified of the outcome.
func (s *EventService) Approve(ctx context.Context, id, approverID string, decision domain.EventStatus) (*ports.EventView, error) {
	if decision != domain.EventApproved && decision != domain.EventRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", domain.ErrInvalidTransition)
	}

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.Status.CanTransitionTo(decision) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, event.Status, decision)
	}

	now := time.Now().UTC()
	event.Status = decision
	event.UpdatedAt = now
	if decision == domain.EventApproved {
		event.ApprovedBy = approverID
		event.ApprovedAt = &now
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("approve event: %w", err)
	}

	// Side effects run after the decision is durable. Failures here are
	// logged, never rolled back into the approval.
	if decision == domain.EventApproved {
		s.ensureChannel(ctx, event)
	}
	s.notifyCreator(event, decision)

	s.log.Info().
		Str("event_id", id).
		Str("approved_by", approverID).
		Str("decision", string(decision)).
		Msg("event reviewed")

	return s.toView(ctx, event), nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

// ensureChannel creates the event's discussion channel and its welcome
// post exactly once. Idempotent by existence check, so re-approving an
// edited-and-resubmitted event never duplicates the channel.
func (s *EventService) ensureChannel(ctx context.Context, event *domain.Event) {
	exists, err := s.channels.ExistsByEvent(ctx, event.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("channel existence check failed")
		return
	}
	if exists {
		return
	}

	channel, err := s.channels.Create(ctx, &domain.Channel{
		EventID:   event.ID,
		Name:      "Discussion: " + event.Title,
		Type:      domain.ChannelTypeEventDiscussion,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("failed to seed discussion channel")
		return
	}

	_, err = s.posts.Create(ctx, &domain.Post{
		ChannelID:  channel.ID,
		AuthorName: "System",
		Content:    "Welcome! This channel was opened for the event \"" + event.Title + "\".",
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("channel_id", channel.ID).Msg("failed to seed welcome post")
	}
}

func (s *EventService) notifyCreator(event *domain.Event, decision domain.EventStatus) {
	if event.CreatedBy == "" {
		return
	}
	msg := fmt.Sprintf("Your event %q was %s", event.Title, decision)
	s.notifier.Notify(event.CreatedBy, domain.NotifyEventStatus, msg)
}

// toView enriches the stored event with its date-derived status and the
// current occupancy. A count failure degrades to zero rather than
// failing the read.
func (s *EventService) toView(ctx context.Context, event *domain.Event) *ports.EventView {
	registered, err := s.registrations.CountActiveByEvent(ctx, event.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("occupancy count failed")
		registered = 0
	}
	return &ports.EventView{
		Event:                *event,
		EffectiveStatus:      event.EffectiveStatus(time.Now().UTC()),
		VolunteersRegistered: registered,
	}
}
