package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

// Denylist marks tokens dead before their natural expiry (logout).
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService implements registration, login, and token invalidation.
type AuthService struct {
	users    ports.UserRepository
	codec    *TokenCodec
	denylist Denylist
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *TokenCodec, denylist Denylist, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, denylist: denylist, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleVolunteer},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.Active {
		return "", nil, domain.ErrUserLocked
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.codec.Issue(user.ID, user.Email, user.Roles)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout deny-lists the presented token for the rest of its validity
// window. An already-expired or unparseable token needs no entry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil
	}

	ttl := claims.RemainingValidity(time.Now().UTC())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return err
	}

	s.log.Info().Str("subject", claims.Subject).Msg("token revoked")
	return nil
}

// Introspect reports whether a token is valid right now: signature and
// expiry pass and the token has not been revoked.
func (s *AuthService) Introspect(ctx context.Context, token string) bool {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return false
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.log.Warn().Err(err).Msg("denylist check failed during introspection")
		return false
	}
	return !revoked
}
