package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// TokenCodec signs and verifies bearer credentials with a shared
// symmetric secret. Tokens are immutable after issuance; revocation is
// handled externally via the deny-list keyed by token id.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenCodec(secret, issuer string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue builds a signed claim set for the subject with a fixed validity
// window. Returns the serialized token and its token id.
func (c *TokenCodec) Issue(subject, email string, roles []string) (string, string, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"roles": roles,
		"jti":   jti,
		"iss":   c.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// Verify parses the token, recomputes the signature, and checks expiry.
// The returned claims carry role names only; permissions are resolved
// separately so that role edits apply to tokens already in flight.
func (c *TokenCodec) Verify(token string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenInvalid
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.TokenClaims{}
	out.Subject, _ = claims["sub"].(string)
	out.Email, _ = claims["email"].(string)
	out.TokenID, _ = claims["jti"].(string)
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if name, ok := r.(string); ok {
				out.Roles = append(out.Roles, name)
			}
		}
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
