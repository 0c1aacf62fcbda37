package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// RegisterInput carries the data for a new account. New accounts always
// start with the VOLUNTEER role; elevated roles are granted by admins.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// AuthService implements account registration and credential issuance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout places the presented token on the deny-list for the
	// remainder of its validity window.
	Logout(ctx context.Context, token string) error
	// Introspect reports whether a token is currently valid.
	Introspect(ctx context.Context, token string) bool
}
