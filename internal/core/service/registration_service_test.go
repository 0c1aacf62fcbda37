package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

func newRegistrationSvc(events ...*domain.Event) (*RegistrationService, *eventSvcDeps) {
	deps := &eventSvcDeps{
		events:   newStubEventRepo(events...),
		regs:     newStubRegistrationRepo(),
		notifier: &stubNotifier{},
	}
	svc := NewRegistrationService(deps.regs, deps.events, deps.notifier, zerolog.Nop())
	return svc, deps
}

func approvedEvent(id, creator string, capacity int) *domain.Event {
	e := pendingEvent(id, creator)
	e.Status = domain.EventApproved
	e.Capacity = capacity
	return e
}

func TestRegistrationService_Register(t *testing.T) {
	svc, deps := newRegistrationSvc(approvedEvent("event-1", "creator-1", 10))

	reg, err := svc.Register(context.Background(), "event-1", "user-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Status != domain.RegistrationPending {
		t.Fatalf("status = %s, want pending", reg.Status)
	}
	if reg.EventID != "event-1" || reg.UserID != "user-1" {
		t.Fatalf("unexpected registration: %+v", reg)
	}

	sent := deps.notifier.sent()
	if len(sent) != 1 || sent[0].UserID != "creator-1" || sent[0].Type != domain.NotifyEventRegistration {
		t.Fatalf("event creator not notified: %+v", sent)
	}
}

func TestRegistrationService_RegisterDuplicate(t *testing.T) {
	svc, _ := newRegistrationSvc(approvedEvent("event-1", "creator-1", 10))
	ctx := context.Background()

	if _, err := svc.Register(ctx, "event-1", "user-1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "event-1", "user-1"); !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("err = %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegistrationService_RegisterUnknownEvent(t *testing.T) {
	svc, _ := newRegistrationSvc()

	if _, err := svc.Register(context.Background(), "ghost", "user-1"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestRegistrationService_RegisterFullEvent(t *testing.T) {
	svc, _ := newRegistrationSvc(approvedEvent("event-1", "creator-1", 2))
	ctx := context.Background()

	for _, user := range []string{"user-1", "user-2"} {
		if _, err := svc.Register(ctx, "event-1", user); err != nil {
			t.Fatalf("register %s: %v", user, err)
		}
	}

	if _, err := svc.Register(ctx, "event-1", "user-3"); !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("err = %v, want ErrEventFull", err)
	}
}

func TestRegistrationService_RejectedSlotFreesCapacity(t *testing.T) {
	svc, _ := newRegistrationSvc(approvedEvent("event-1", "creator-1", 1))
	ctx := context.Background()

	reg, err := svc.Register(ctx, "event-1", "user-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, reg.ID, domain.RegistrationRejected, "creator-1"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if _, err := svc.Register(ctx, "event-1", "user-2"); err != nil {
		t.Fatalf("slot freed by rejection, register should succeed: %v", err)
	}
}

func TestRegistrationService_ZeroCapacityIsUnlimited(t *testing.T) {
	svc, _ := newRegistrationSvc(approvedEvent("event-1", "creator-1", 0))
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		if _, err := svc.Register(ctx, "event-1", fmt.Sprintf("user-%d", i)); err != nil {
			t.Fatalf("register #%d: %v", i, err)
		}
	}
}

// Concurrent registrations for the same event must never overshoot
// capacity: the check-then-insert sequence is serialized per event.
func TestRegistrationService_ConcurrentRegistrationsRespectCapacity(t *testing.T) {
	const capacity = 5
	const attempts = 40

	svc, deps := newRegistrationSvc(approvedEvent("event-1", "creator-1", capacity))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, "event-1", fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()

	var created, full int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrEventFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != capacity {
		t.Fatalf("created = %d, want exactly %d", created, capacity)
	}
	if full != attempts-capacity {
		t.Fatalf("rejected = %d, want %d", full, attempts-capacity)
	}

	occupancy, err := deps.regs.CountActiveByEvent(ctx, "event-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if occupancy != capacity {
		t.Fatalf("stored occupancy = %d, capacity invariant violated", occupancy)
	}
}

func TestRegistrationService_UpdateStatusOnlyEventCreator(t *testing.T) {
	svc, _ := newRegistrationSvc(approvedEvent("event-1", "creator-1", 10))
	ctx := context.Background()

	reg, err := svc.Register(ctx, "event-1", "user-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, reg.ID, domain.RegistrationApproved, "someone-else"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	// The registrant cannot approve their own registration either.
	if _, err := svc.UpdateStatus(ctx, reg.ID, domain.RegistrationApproved, "user-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	updated, err := svc.UpdateStatus(ctx, reg.ID, domain.RegistrationApproved, "creator-1")
	if err != nil {
		t.Fatalf("creator update: %v", err)
	}
	if updated.Status != domain.RegistrationApproved {
		t.Fatalf("status = %s", updated.Status)
	}
}

func TestRegistrationService_UpdateStatusNotifiesRegistrant(t *testing.T) {
	svc, deps := newRegistrationSvc(approvedEvent("event-1", "creator-1", 10))
	ctx := context.Background()

	reg, err := svc.Register(ctx, "event-1", "user-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, reg.ID, domain.RegistrationApproved, "creator-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	var gotStatus bool
	for _, n := range deps.notifier.sent() {
		if n.UserID == "user-1" && n.Type == domain.NotifyRegistrationStatus {
			gotStatus = true
		}
	}
	if !gotStatus {
		t.Fatal("registrant not notified of the decision")
	}
}

func TestRegistrationService_UpdateStatusSameStatusIsNoOp(t *testing.T) {
	svc, deps := newRegistrationSvc(approvedEvent("event-1", "creator-1", 10))
	ctx := context.Background()

	reg, err := svc.Register(ctx, "event-1", "user-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	before := len(deps.notifier.sent())

	updated, err := svc.UpdateStatus(ctx, reg.ID, domain.RegistrationPending, "creator-1")
	if err != nil {
		t.Fatalf("no-op update: %v", err)
	}
	if updated.Status != domain.RegistrationPending {
		t.Fatalf("status = %s", updated.Status)
	}
	if len(deps.notifier.sent()) != before {
		t.Fatal("no-op update must not notify")
	}
}

func TestRegistrationService_DeletePermissions(t *testing.T) {
	cases := []struct {
		name        string
		actorID     string
		authorities domain.AuthoritySet
		wantErr     error
	}{
		{"registrant may withdraw", "user-1", domain.AuthoritySet{}, nil},
		{"event creator may remove", "creator-1", domain.AuthoritySet{}, nil},
		{"admin may remove", "other", domain.AuthoritySet{domain.RoleTag(domain.RoleAdmin): {}}, nil},
		{"stranger may not", "stranger", domain.AuthoritySet{}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newRegistrationSvc(approvedEvent("event-1", "creator-1", 10))
			ctx := context.Background()

			reg, err := svc.Register(ctx, "event-1", "user-1")
			if err != nil {
				t.Fatalf("register: %v", err)
			}

			err = svc.Delete(ctx, reg.ID, tc.actorID, tc.authorities)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("delete: %v", err)
				}
				if _, err := svc.Get(ctx, reg.ID); !errors.Is(err, domain.ErrRegistrationNotFound) {
					t.Fatal("registration still present after delete")
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
