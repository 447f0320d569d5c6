package service

import (
	"context"
	"testing"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/mapacultural/fomenta/pkg/idx"
	"github.com/mapacultural/fomenta/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newResetFixture(t *testing.T) (store.Store, *PasswordResetService, domain.Tenant, domain.Principal) {
	t.Helper()

	st := newTestStore(t)
	tenant := seedTenant(t, st, "Jaú")
	principal := seedPrincipal(t, st, tenant, domain.RoleProponent, "ana@example.com", "old-password")
	return st, &PasswordResetService{Store: st}, tenant, principal
}

func TestResetRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, svc, tenant, _ := newResetFixture(t)

	token, err := svc.Request(ctx, tenant, domain.RoleProponent, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.Confirm(ctx, tenant, domain.RoleProponent, token, "new-password"))

	// Old password dead, new one live.
	auth := &AuthService{Store: st, Signer: newTestSigner(t), Issuer: "fomenta-test", TTL: jwtx.DefaultAccessTokenTTL}
	_, err = auth.Login(ctx, tenant, domain.RoleProponent, "ana@example.com", "old-password", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, tenant, domain.RoleProponent, "ana@example.com", "new-password", "")
	require.NoError(t, err)
}

func TestResetTokenIsSingleUse(t *testing.T) {
	ctx := context.Background()
	_, svc, tenant, _ := newResetFixture(t)

	token, err := svc.Request(ctx, tenant, domain.RoleProponent, "ana@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(ctx, tenant, domain.RoleProponent, token, "new-password"))

	err = svc.Confirm(ctx, tenant, domain.RoleProponent, token, "another-password")
	require.ErrorIs(t, err, ErrResetInvalid)
}

func TestResetRequestHidesUnknownAccounts(t *testing.T) {
	ctx := context.Background()
	_, svc, tenant, _ := newResetFixture(t)

	token, err := svc.Request(ctx, tenant, domain.RoleProponent, "nobody@example.com")
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestResetConfirmRejectsGarbageToken(t *testing.T) {
	ctx := context.Background()
	_, svc, tenant, _ := newResetFixture(t)

	err := svc.Confirm(ctx, tenant, domain.RoleProponent, "never-issued-token", "new-password")
	require.ErrorIs(t, err, ErrResetInvalid)
}

func seedExpiredReset(t *testing.T, st store.Store, tenant domain.Tenant, principal domain.Principal) string {
	t.Helper()

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, st.PasswordResets().CreatePasswordReset(context.Background(), domain.PasswordReset{
		ID:          idx.New().String(),
		TenantID:    tenant.ID,
		PrincipalID: principal.ID,
		TokenHash:   cryptox.FingerprintToken(token),
		ExpiresAt:   now.Add(-time.Minute),
		CreatedAt:   now.Add(-2 * time.Hour),
	}))
	return token
}

func TestResetConfirmRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	st, svc, tenant, principal := newResetFixture(t)

	token := seedExpiredReset(t, st, tenant, principal)

	err := svc.Confirm(ctx, tenant, domain.RoleProponent, token, "new-password")
	require.ErrorIs(t, err, ErrResetInvalid)
}

func TestResetBumpsTokenEpoch(t *testing.T) {
	ctx := context.Background()
	st, svc, tenant, principal := newResetFixture(t)

	before, err := st.Principals().GetPrincipalByID(ctx, principal.ID)
	require.NoError(t, err)

	token, err := svc.Request(ctx, tenant, domain.RoleProponent, "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(ctx, tenant, domain.RoleProponent, token, "new-password"))

	after, err := st.Principals().GetPrincipalByID(ctx, principal.ID)
	require.NoError(t, err)
	require.Equal(t, before.TokenEpoch+1, after.TokenEpoch)
}

func TestHousekeepingPurgesExpiredResets(t *testing.T) {
	ctx := context.Background()
	st, svc, tenant, principal := newResetFixture(t)

	stale := seedExpiredReset(t, st, tenant, principal)

	token, err := svc.Request(ctx, tenant, domain.RoleProponent, "ana@example.com")
	require.NoError(t, err)

	require.NoError(t, st.PasswordResets().DeleteExpiredPasswordResets(ctx, time.Now().UTC()))

	// The stale row is gone, the live token survives the purge.
	err = svc.Confirm(ctx, tenant, domain.RoleProponent, stale, "new-password")
	require.ErrorIs(t, err, ErrResetInvalid)
	require.NoError(t, svc.Confirm(ctx, tenant, domain.RoleProponent, token, "new-password"))
}
