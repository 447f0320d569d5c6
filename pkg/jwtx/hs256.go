package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a compact JWT and returns the claims if it is legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrWeakSecret  = errors.New("jwtx: signing secret too short")
)

// MinSecretLen is the minimum HS256 secret length we accept. HMAC-SHA256
// keys shorter than the hash output weaken the MAC.
const MinSecretLen = 32

// HS256 signs and verifies tokens with a single shared HMAC-SHA256 secret.
// Issuer and verifier are the same process (or share the secret file), so a
// symmetric scheme is enough; there is no third-party verification audience.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 builds a signer/verifier around the shared secret.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}
	return &HS256{secret: secret, issuer: issuer}, nil
}

// Sign produces a compact three-part token over the claims.
func (h *HS256) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(h.secret)
}

// Verify checks structure, signature and time window, in that order, and
// never returns claims from a token that failed any step.
func (h *HS256) Verify(tokenString string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrAlgMismatch
			}
			return h.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	return claims, nil
}

// mapParseError collapses golang-jwt's error tree onto our sentinels so
// callers can branch without importing the jwt package.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	default:
		return ErrMalformed
	}
}
