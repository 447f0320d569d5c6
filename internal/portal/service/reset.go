package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/mapacultural/fomenta/pkg/idx"
	"github.com/mapacultural/fomenta/pkg/slogx"
)

// DefaultResetTTL bounds how long a password-reset token stays redeemable.
const DefaultResetTTL = time.Hour

// PasswordResetService issues and redeems single-use reset tokens. The
// opaque token travels out of band; only its fingerprint is stored.
type PasswordResetService struct {
	Store store.Store
	TTL   time.Duration
}

func (s *PasswordResetService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultResetTTL
}

// Request issues a reset token for the (tenant, role, email) account.
// Returns the opaque token. When the account does not exist it returns
// ("", nil): the HTTP layer answers identically either way so the endpoint
// cannot be used to enumerate accounts.
func (s *PasswordResetService) Request(
	ctx context.Context,
	tenant domain.Tenant,
	role domain.Role,
	email string,
) (string, error) {
	log := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	principal, err := s.Store.Principals().GetPrincipalByEmail(ctx, tenant.ID, role, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	if !principal.Active {
		return "", nil
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	reset := domain.PasswordReset{
		ID:          idx.New().String(),
		TenantID:    tenant.ID,
		PrincipalID: principal.ID,
		TokenHash:   cryptox.FingerprintToken(token),
		ExpiresAt:   now.Add(s.ttl()),
		CreatedAt:   now,
	}
	if err := s.Store.PasswordResets().CreatePasswordReset(ctx, reset); err != nil {
		return "", fmt.Errorf("storing reset: %w", err)
	}

	log.Info("password reset issued",
		"principal_id", principal.ID, "expires_at", reset.ExpiresAt)
	return token, nil
}

// Confirm redeems a reset token exactly once and replaces the secret hash.
// The consume-and-replace pair runs in one transaction; the epoch bump in
// UpdatePasswordHash strands every token minted before the reset.
func (s *PasswordResetService) Confirm(
	ctx context.Context,
	tenant domain.Tenant,
	role domain.Role,
	token, newPassword string,
) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	fingerprint := cryptox.FingerprintToken(token)
	now := time.Now().UTC()

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		reset, err := tx.PasswordResets().GetPasswordResetByTokenHash(ctx, fingerprint)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrResetInvalid
			}
			return err
		}

		// Unknown, expired, used and wrong-scope tokens all answer alike.
		if !reset.Consumable(now) || reset.TenantID != tenant.ID {
			return ErrResetInvalid
		}

		principal, err := tx.Principals().GetPrincipalByID(ctx, reset.PrincipalID)
		if err != nil {
			return err
		}
		if principal.Role != role || !principal.Active {
			return ErrResetInvalid
		}

		if err := tx.PasswordResets().MarkPasswordResetUsed(ctx, reset.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Lost a race with a concurrent confirm.
				return ErrResetInvalid
			}
			return err
		}

		return tx.Principals().UpdatePasswordHash(ctx, principal.ID, hash)
	})
}
