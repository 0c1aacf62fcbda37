package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/api/metrics"
	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// Context keys set by the Auth middleware.
const (
	ContextSubject     = "subject"
	ContextAuthorities = "authorities"
)

// TokenVerifier checks a bearer credential's signature and expiry.
type TokenVerifier interface {
	Verify(token string) (*domain.TokenClaims, error)
}

// RevocationChecker consults the deny-list before trusting an
// otherwise-valid token.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthorityResolver expands role names into the effective authority set.
type AuthorityResolver interface {
	Resolve(ctx context.Context, roleNames []string) (domain.AuthoritySet, error)
}

// Auth verifies the bearer credential, resolves authorities, and
// attaches both to the request context. Requests without a credential
// pass through as anonymous; whether that is acceptable is decided per
// route by RequireAuthority. All verification failures collapse into
// the same 401 so the response never leaks why a token was rejected.
func Auth(codec TokenVerifier, revoked RevocationChecker, resolver AuthorityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				metrics.AuthDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := c.Request().Context()

			// Deny-list outage degrades to trusting the signature; the
			// list is an early-invalidation aid, not the source of truth.
			isRevoked, err := revoked.IsRevoked(ctx, claims.TokenID)
			if err != nil {
				log.Warn().Err(err).Msg("denylist check failed, trusting token signature")
			} else if isRevoked {
				metrics.AuthDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// Authorities resolve against the live role registry on
			// every request; permission edits apply without re-login.
			authorities, err := resolver.Resolve(ctx, claims.Roles)
			if err != nil {
				return err
			}

			c.Set(ContextSubject, claims.Subject)
			c.Set(ContextAuthorities, authorities)
			metrics.AuthDecisionsTotal.WithLabelValues("granted").Inc()

			return next(c)
		}
	}
}
