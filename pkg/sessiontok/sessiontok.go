// Package sessiontok issues and verifies self-contained session tokens.
//
// Tokens are HS256-signed JWTs carrying {identity, display name, session id,
// expiry}. Verification is a pure function of the token and the server
// secret: no store lookup happens, so a token cannot be revoked before its
// expiry. That is a deliberate property of the design, not an oversight.
package sessiontok

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = 5 * time.Minute

var (
	ErrTokenMissing = errors.New("session token missing")
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

// Claims is the decoded payload of a verified session token.
type Claims struct {
	Identity  string
	Name      string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// Issuer signs and verifies session tokens with a symmetric server secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer. A zero ttl falls back to DefaultTTL; negative
// values are kept as-is so tests can mint already-expired tokens.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token binding identity, display name, and role, expiring
// after the configured ttl. The generated session id is returned inside
// Claims so the caller can record it as the account's session marker.
func (i *Issuer) Issue(identity, name, role string) (string, Claims, error) {
	now := time.Now().UTC()
	claims := Claims{
		Identity:  identity,
		Name:      name,
		Role:      role,
		SessionID: uuid.NewString(),
		ExpiresAt: now.Add(i.ttl),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  claims.Identity,
		"name": claims.Name,
		"role": claims.Role,
		"jti":  claims.SessionID,
		"exp":  claims.ExpiresAt.Unix(),
	})
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}

// Verify checks the signature and expiry of token and returns its claims.
// Failure modes: ErrTokenMissing for an empty token, ErrTokenExpired when
// the expiry elapsed, ErrTokenInvalid for everything else (bad signature,
// malformed payload, wrong algorithm).
func (i *Issuer) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrTokenMissing
	}

	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	identity, _ := mc["sub"].(string)
	name, _ := mc["name"].(string)
	role, _ := mc["role"].(string)
	sessionID, _ := mc["jti"].(string)
	if identity == "" {
		return Claims{}, ErrTokenInvalid
	}

	claims := Claims{Identity: identity, Name: name, Role: role, SessionID: sessionID}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
