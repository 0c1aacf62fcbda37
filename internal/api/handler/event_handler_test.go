package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/volunteerhub/volunteerhub-api/internal/api/middleware"
	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

type stubEventService struct {
	createFn  func(ctx context.Context, input ports.CreateEventInput, creatorID string) (*ports.EventView, error)
	listFn    func(ctx context.Context, input ports.ListEventsInput) (*ports.ListEventsResult, error)
	approveFn func(ctx context.Context, id, approverID string, decision domain.EventStatus) (*ports.EventView, error)
}

func (s *stubEventService) Create(ctx context.Context, input ports.CreateEventInput, creatorID string) (*ports.EventView, error) {
	return s.createFn(ctx, input, creatorID)
}

func (s *stubEventService) Get(context.Context, string) (*ports.EventView, error) {
	return nil, domain.ErrEventNotFound
}

func (s *stubEventService) List(ctx context.Context, input ports.ListEventsInput) (*ports.ListEventsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubEventService) ListMine(context.Context, string) ([]ports.EventView, error) {
	return nil, nil
}

func (s *stubEventService) Update(context.Context, string, ports.UpdateEventInput) (*ports.EventView, error) {
	return nil, domain.ErrEventNotFound
}

func (s *stubEventService) Approve(ctx context.Context, id, approverID string, decision domain.EventStatus) (*ports.EventView, error) {
	return s.approveFn(ctx, id, approverID, decision)
}

func (s *stubEventService) Delete(context.Context, string) error {
	return nil
}

func TestEventHandler_CreateRequiresSubject(t *testing.T) {
	h := NewEventHandler(&stubEventService{
		createFn: func(context.Context, ports.CreateEventInput, string) (*ports.EventView, error) {
			t.Fatal("service must not be reached without a subject")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/v1/events", `{"title":"t","description":"d","location":"l","date":"2026-10-01T10:00:00Z"}`)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestEventHandler_CreateAttributesCreator(t *testing.T) {
	h := NewEventHandler(&stubEventService{
		createFn: func(_ context.Context, input ports.CreateEventInput, creatorID string) (*ports.EventView, error) {
			if creatorID != "user-1" {
				t.Fatalf("creator = %q, want the authenticated subject", creatorID)
			}
			if input.Title != "Cleanup" {
				t.Fatalf("title = %q", input.Title)
			}
			return &ports.EventView{Event: domain.Event{ID: "event-1", Title: input.Title}}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/v1/events",
		`{"title":"Cleanup","description":"d","location":"l","date":"2026-10-01T10:00:00Z"}`)
	c.Set(middleware.ContextSubject, "user-1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201", rec.Code)
	}
}

func TestEventHandler_ListAdminViewFollowsAuthorities(t *testing.T) {
	cases := []struct {
		name        string
		authorities domain.AuthoritySet
		wantAdmin   bool
	}{
		{"anonymous", nil, false},
		{"volunteer", domain.AuthoritySet{"CREATE_REGISTRATION": {}}, false},
		{"reviewer", domain.AuthoritySet{domain.PermApproveEvent: {}}, true},
		{"admin role tag", domain.AuthoritySet{domain.RoleTag(domain.RoleAdmin): {}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewEventHandler(&stubEventService{
				listFn: func(_ context.Context, input ports.ListEventsInput) (*ports.ListEventsResult, error) {
					if input.AdminView != tc.wantAdmin {
						t.Fatalf("AdminView = %v, want %v", input.AdminView, tc.wantAdmin)
					}
					return &ports.ListEventsResult{}, nil
				},
			})

			c, _ := newTestContext(t, http.MethodGet, "/v1/events", "")
			if tc.authorities != nil {
				c.Set(middleware.ContextAuthorities, tc.authorities)
			}
			if err := h.List(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
		})
	}
}

func TestEventHandler_ListParsesPaging(t *testing.T) {
	h := NewEventHandler(&stubEventService{
		listFn: func(_ context.Context, input ports.ListEventsInput) (*ports.ListEventsResult, error) {
			if input.Page != 3 || input.Limit != 15 || input.Keyword != "beach" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ListEventsResult{}, nil
		},
	})

	c, _ := newTestContext(t, http.MethodGet, "/v1/events?page=3&limit=15&keyword=beach", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestEventHandler_ApproveValidatesDecision(t *testing.T) {
	h := NewEventHandler(&stubEventService{
		approveFn: func(context.Context, string, string, domain.EventStatus) (*ports.EventView, error) {
			t.Fatal("service must not be reached with an invalid decision")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/v1/events/event-1/approval", `{"decision":"completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("event-1")
	c.Set(middleware.ContextSubject, "admin-1")

	err := h.Approve(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("err = %v, want 422", err)
	}
}

func TestEventHandler_ApprovePassesApprover(t *testing.T) {
	h := NewEventHandler(&stubEventService{
		approveFn: func(_ context.Context, id, approverID string, decision domain.EventStatus) (*ports.EventView, error) {
			if id != "event-1" || approverID != "admin-1" || decision != domain.EventApproved {
				t.Fatalf("unexpected args: %s %s %s", id, approverID, decision)
			}
			return &ports.EventView{Event: domain.Event{ID: id, Status: decision}}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/v1/events/event-1/approval", `{"decision":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("event-1")
	c.Set(middleware.ContextSubject, "admin-1")

	if err := h.Approve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
}
