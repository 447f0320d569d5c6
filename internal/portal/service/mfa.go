package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/pquerna/otp/totp"
)

// MFAService handles TOTP enrolment for staff accounts. The secret is
// stored on enrol but login only enforces it once Activate has proven the
// authenticator works, so staff can't lock themselves out with a bad scan.
type MFAService struct {
	Store  store.Store
	Issuer string
}

// Enrolment is handed back to the caller to feed their authenticator app.
type Enrolment struct {
	Secret     string
	ProvingURL string // otpauth:// URL, usually rendered as a QR code
}

// Enroll generates a fresh TOTP secret for a staff principal. The secret is
// stored in pending form: validation at login starts only after Activate.
func (s *MFAService) Enroll(ctx context.Context, principal domain.Principal) (Enrolment, error) {
	if principal.Role != domain.RoleStaff {
		return Enrolment{}, ErrForbidden
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: principal.Email,
	})
	if err != nil {
		return Enrolment{}, fmt.Errorf("generating totp key: %w", err)
	}

	// Pending prefix keeps the secret inert until activation.
	if err := s.Store.Principals().UpdateMFASecret(ctx, principal.ID, domain.MFAPendingPrefix+key.Secret()); err != nil {
		return Enrolment{}, err
	}

	return Enrolment{Secret: key.Secret(), ProvingURL: key.URL()}, nil
}

// Activate verifies a code against the pending secret and, on success,
// promotes it so logins require TOTP from now on.
func (s *MFAService) Activate(ctx context.Context, principal domain.Principal, code string) error {
	if principal.Role != domain.RoleStaff {
		return ErrForbidden
	}

	secret, pending := pendingSecret(principal)
	if !pending {
		return fmt.Errorf("%w: no pending enrolment", ErrValidation)
	}

	if !totp.Validate(code, secret) {
		return ErrInvalidCredentials
	}

	return s.Store.Principals().UpdateMFASecret(ctx, principal.ID, secret)
}

func pendingSecret(p domain.Principal) (string, bool) {
	if p.MFASecret == nil {
		return "", false
	}
	s, ok := strings.CutPrefix(*p.MFASecret, domain.MFAPendingPrefix)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
