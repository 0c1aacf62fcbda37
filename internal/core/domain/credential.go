package domain

import (
	"errors"
	"time"
)

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token signature invalid")
)

// TokenClaims is the verified content of a bearer credential. The claim
// set carries role names, never resolved permissions.
type TokenClaims struct {
	Subject   string
	Email     string
	Roles     []string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RemainingValidity returns how long the credential is still good for.
// Used to size the deny-list entry on logout.
func (c *TokenClaims) RemainingValidity(now time.Time) time.Duration {
	if c.ExpiresAt.Before(now) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
