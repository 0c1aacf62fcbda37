package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volunteerhub/volunteerhub-api/internal/api/middleware"
	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// ctxSubject extracts the authenticated subject injected by the Auth
// middleware. Presence proves both that the middleware ran and that the
// credential verified; handlers must not proceed without it.
func ctxSubject(c echo.Context) (string, error) {
	subject, _ := c.Get(middleware.ContextSubject).(string)
	if subject == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return subject, nil
}

// ctxAuthorities returns the resolved authority set for the request, or
// an empty set for anonymous requests.
func ctxAuthorities(c echo.Context) domain.AuthoritySet {
	if authorities, ok := c.Get(middleware.ContextAuthorities).(domain.AuthoritySet); ok {
		return authorities
	}
	return domain.AuthoritySet{}
}
