package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the policy lifetime for portal access tokens.
// There are no refresh tokens; a session simply lasts a week.
const DefaultAccessTokenTTL = 7 * 24 * time.Hour

// Claims are the access-token claims shared by every principal kind.
// The payload deliberately carries only identity and scoping data, never
// secret hashes or profile details.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the principal kind: "staff", "proponente" or "parecerista".
	Role string `json:"role"`

	// TenantID scopes the token to one municipality.
	TenantID string `json:"ten"`

	// Epoch is the principal's token_epoch at issue time. Bumping the
	// stored epoch (e.g. on password change) invalidates all earlier
	// tokens at verification time.
	Epoch int64 `json:"epoch"`
}

// NewAccessClaims builds minimally-correct claims for a principal.
func NewAccessClaims(
	subject, role, tenantID string,
	epoch int64,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role:     role,
		TenantID: tenantID,
		Epoch:    epoch,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf). Verify already enforces this server-side; the
// client SDK uses it to decide whether a cached session is worth resuming.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
