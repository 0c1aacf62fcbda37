package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn      func(ctx context.Context, email, password string) (string, *domain.User, error)
	logoutFn     func(ctx context.Context, token string) error
	introspectFn func(ctx context.Context, token string) bool
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Introspect(ctx context.Context, token string) bool {
	return s.introspectFn(ctx, token)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Email != "alice@example.com" || input.FullName != "Alice" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "user-1", Email: input.Email, Roles: []string{"VOLUNTEER"}}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"secret","full_name":"Alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatal("service must not be reached on invalid payload")
			return nil, nil
		},
	})

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"secret"}`},
		{"bad email", `{"email":"not-an-email","password":"secret"}`},
		{"short password", `{"email":"a@b.c","password":"abc"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodPost, "/auth/register", tc.body)
			err := h.Register(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
				t.Fatalf("err = %v, want 422", err)
			}
		})
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"a@b.c","password":"secret"}`)
	// The domain error passes through untouched; the HTTP error handler
	// owns the status mapping.
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists passthrough", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "a@b.c" || password != "secret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "signed-token", &domain.User{ID: "user-1", Email: email}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"a@b.c","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("token missing from response: %+v", resp)
	}
}

func TestAuthHandler_Logout_PassesBearerToken(t *testing.T) {
	var revoked string
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Request().Header.Set("Authorization", "Bearer the-token")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %d, want 204", rec.Code)
	}
	if revoked != "the-token" {
		t.Fatalf("revoked = %q", revoked)
	}
}

func TestAuthHandler_Logout_NoHeaderIsNoOp(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(context.Context, string) error {
			t.Fatal("service must not be reached without a bearer token")
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %d, want 204", rec.Code)
	}
}

func TestAuthHandler_Introspect(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		introspectFn: func(_ context.Context, token string) bool {
			return token == "valid-token"
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/introspect", `{"token":"valid-token"}`)
	if err := h.Introspect(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp introspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Valid {
		t.Fatal("expected valid=true")
	}

	c, rec = newTestContext(t, http.MethodPost, "/auth/introspect", `{"token":"revoked"}`)
	if err := h.Introspect(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Valid {
		t.Fatal("expected valid=false")
	}
}
