package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/mapacultural/fomenta/pkg/jwtx"
	"github.com/mapacultural/fomenta/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

// AuthService verifies credentials and mints access tokens. Verification
// happens entirely inside this trusted boundary: hashes never leave the
// store layer and the comparison runs server-side.
type AuthService struct {
	Store  store.Store
	Signer *jwtx.HS256
	Issuer string
	TTL    time.Duration
}

// LoginResult is what a successful login hands back to the HTTP layer.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal domain.Principal
}

// Login verifies (tenant, role, email, password[, otp]) and issues a token.
//
// Every failure mode returns ErrInvalidCredentials: unknown email, wrong
// password, deactivated account and missing/wrong TOTP code must be
// indistinguishable to an unauthenticated caller.
func (s *AuthService) Login(
	ctx context.Context,
	tenant domain.Tenant,
	role domain.Role,
	email, password, otpCode string,
) (LoginResult, error) {
	log := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	principal, err := s.Store.Principals().GetPrincipalByEmail(ctx, tenant.ID, role, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time so unknown emails aren't
			// detectable by latency.
			_ = cryptox.VerifyPassword(password, dummyHash())
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !principal.Active {
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, principal.PasswordHash); err != nil {
		log.Info("login password mismatch",
			"tenant_id", tenant.ID, "role", string(role))
		return LoginResult{}, ErrInvalidCredentials
	}

	if principal.MFAEnrolled() {
		if otpCode == "" || !totp.Validate(otpCode, *principal.MFASecret) {
			return LoginResult{}, ErrInvalidCredentials
		}
	}

	now := time.Now().UTC()

	// Best effort: a failed timestamp write must not fail the login.
	if err := s.Store.Principals().TouchLastAccess(ctx, principal.ID, now); err != nil {
		log.Warn("failed to record last access", "principal_id", principal.ID, "err", err)
	}

	claims := jwtx.NewAccessClaims(
		principal.ID, string(principal.Role), principal.TenantID,
		principal.TokenEpoch, s.TTL, s.Issuer, now,
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Principal: principal,
	}, nil
}

// Authenticate re-checks a verified token's claims against current state:
// the principal must still exist, be active, hold the asserted role and
// tenant, and be on the same token epoch. This is the revocation mechanism:
// a password change bumps the epoch and strands every earlier token.
func (s *AuthService) Authenticate(ctx context.Context, claims jwtx.Claims) (domain.Principal, error) {
	principal, err := s.Store.Principals().GetPrincipalByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrInvalidCredentials
		}
		return domain.Principal{}, err
	}

	if !principal.Active ||
		string(principal.Role) != claims.Role ||
		principal.TenantID != claims.TenantID ||
		principal.TokenEpoch != claims.Epoch {
		return domain.Principal{}, ErrInvalidCredentials
	}

	return principal, nil
}

// dummyHash is a fixed argon2id hash used to equalise the timing of logins
// against unknown emails. The password behind it is random and discarded.
// Computed once; logins run concurrently.
var (
	dummyHashOnce sync.Once
	dummyHashPHC  string
)

func dummyHash() string {
	dummyHashOnce.Do(func() {
		h, err := cryptox.HashPassword("timing-equalisation-placeholder")
		if err != nil {
			// Verification against "" fails fast; acceptable fallback.
			return
		}
		dummyHashPHC = h
	})
	return dummyHashPHC
}
