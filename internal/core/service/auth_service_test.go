package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.seq++
	user.ID = "user-" + strconv.Itoa(r.seq)
	cp := *user
	r.users[user.Email] = &cp
	return user, nil
}

type stubDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[tokenID]
	return ok, nil
}

func newAuthSvc() (*AuthService, *stubUserRepo, *stubDenylist) {
	users := newStubUserRepo()
	denylist := newStubDenylist()
	codec := NewTokenCodec("test-secret", "volunteerhub", time.Hour)
	return NewAuthService(users, codec, denylist, zerolog.Nop()), users, denylist
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_RegisterDefaultsToVolunteer(t *testing.T) {
	svc, _, _ := newAuthSvc()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "Alice@Example.COM",
		Password: "secret",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleVolunteer {
		t.Fatalf("roles = %v, want [VOLUNTEER]", user.Roles)
	}
	if !user.Active {
		t.Fatal("new accounts start active")
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthSvc()
	ctx := context.Background()

	input := ports.RegisterInput{Email: "a@b.c", Password: "secret"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestAuthService_LoginRoundTrip(t *testing.T) {
	svc, _, _ := newAuthSvc()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(ctx, "a@b.c", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if user.Email != "a@b.c" {
		t.Fatalf("user = %+v", user)
	}
	if !svc.Introspect(ctx, token) {
		t.Fatal("freshly issued token must introspect as valid")
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, users, _ := newAuthSvc()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password and unknown account collapse into the same error.
	if _, _, err := svc.Login(ctx, "a@b.c", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@b.c", "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown account: err = %v", err)
	}

	users.mu.Lock()
	users.users["a@b.c"].Active = false
	users.mu.Unlock()
	if _, _, err := svc.Login(ctx, "a@b.c", "secret"); !errors.Is(err, domain.ErrUserLocked) {
		t.Fatalf("locked account: err = %v", err)
	}
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	svc, _, denylist := newAuthSvc()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := svc.Login(ctx, "a@b.c", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(denylist.revoked) != 1 {
		t.Fatalf("denylist entries = %d, want 1", len(denylist.revoked))
	}
	for _, ttl := range denylist.revoked {
		if ttl <= 0 || ttl > time.Hour {
			t.Fatalf("denylist ttl = %v, want within token validity", ttl)
		}
	}
	if svc.Introspect(ctx, token) {
		t.Fatal("revoked token must introspect as invalid")
	}
}

func TestAuthService_LogoutGarbageTokenIsNoOp(t *testing.T) {
	svc, _, denylist := newAuthSvc()

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("logout of garbage token should not error: %v", err)
	}
	if len(denylist.revoked) != 0 {
		t.Fatal("garbage token must not create a denylist entry")
	}
}

func TestAuthService_IntrospectRejectsBadTokens(t *testing.T) {
	svc, _, _ := newAuthSvc()
	ctx := context.Background()

	if svc.Introspect(ctx, "") || svc.Introspect(ctx, "garbage") {
		t.Fatal("malformed tokens must introspect as invalid")
	}

	other := NewTokenCodec("other-secret", "volunteerhub", time.Hour)
	foreign, _, err := other.Issue("user-1", "a@b.c", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if svc.Introspect(ctx, foreign) {
		t.Fatal("token signed with a different secret must be invalid")
	}
}
