package service

import (
	"context"
	"testing"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, domain.Tenant, domain.Principal) {
	t.Helper()

	st := newTestStore(t)
	tenant := seedTenant(t, st, "Jaú")
	principal := seedPrincipal(t, st, tenant, domain.RoleProponent, "ana@example.com", "s3cret-pass")

	svc := &AuthService{
		Store:  st,
		Signer: newTestSigner(t),
		Issuer: "fomenta-test",
		TTL:    jwtx.DefaultAccessTokenTTL,
	}
	return svc, tenant, principal
}

func TestLoginMintsVerifiableToken(t *testing.T) {
	ctx := context.Background()
	svc, tenant, principal := newAuthService(t)

	result, err := svc.Login(ctx, tenant, domain.RoleProponent, "ana@example.com", "s3cret-pass", "")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, principal.ID, result.Principal.ID)
	require.WithinDuration(t, time.Now().Add(jwtx.DefaultAccessTokenTTL), result.ExpiresAt, time.Minute)

	claims, err := svc.Signer.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, principal.ID, claims.Subject)
	require.Equal(t, string(domain.RoleProponent), claims.Role)
	require.Equal(t, tenant.ID, claims.TenantID)

	// The token round-trips through the per-request session check.
	live, err := svc.Authenticate(ctx, claims)
	require.NoError(t, err)
	require.Equal(t, principal.ID, live.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, tenant, principal := newAuthService(t)

	// Unknown email, wrong password, wrong role and a deactivated account
	// must all come back as the same error.
	_, err := svc.Login(ctx, tenant, domain.RoleProponent, "nobody@example.com", "s3cret-pass", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, tenant, domain.RoleProponent, "ana@example.com", "wrong-pass", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, tenant, domain.RoleStaff, "ana@example.com", "s3cret-pass", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.Store.Principals().SetActive(ctx, principal.ID, false))
	_, err = svc.Login(ctx, tenant, domain.RoleProponent, "ana@example.com", "s3cret-pass", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, tenant, _ := newAuthService(t)

	result, err := svc.Login(ctx, tenant, domain.RoleProponent, "  ANA@Example.COM ", "s3cret-pass", "")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}

func TestLoginScopedToTenant(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	// Valid credentials under tenant A are unknown under tenant B.
	other := seedTenant(t, svc.Store, "Outra Cidade")
	_, err := svc.Login(ctx, other, domain.RoleProponent, "ana@example.com", "s3cret-pass", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsStaleEpoch(t *testing.T) {
	ctx := context.Background()
	svc, tenant, principal := newAuthService(t)

	result, err := svc.Login(ctx, tenant, domain.RoleProponent, "ana@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	claims, err := svc.Signer.Verify(result.Token)
	require.NoError(t, err)

	// A password change bumps the epoch; the old token must die.
	require.NoError(t, svc.Store.Principals().UpdatePasswordHash(ctx, principal.ID, "new-hash"))

	_, err = svc.Authenticate(ctx, claims)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsDeactivated(t *testing.T) {
	ctx := context.Background()
	svc, tenant, principal := newAuthService(t)

	result, err := svc.Login(ctx, tenant, domain.RoleProponent, "ana@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	claims, err := svc.Signer.Verify(result.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Store.Principals().SetActive(ctx, principal.ID, false))

	_, err = svc.Authenticate(ctx, claims)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRecordsLastAccess(t *testing.T) {
	ctx := context.Background()
	svc, tenant, principal := newAuthService(t)

	_, err := svc.Login(ctx, tenant, domain.RoleProponent, "ana@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	reloaded, err := svc.Store.Principals().GetPrincipalByID(ctx, principal.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastAccess)
	require.WithinDuration(t, time.Now(), *reloaded.LastAccess, time.Minute)
}

func TestParallelLoginsForUnknownEmails(t *testing.T) {
	ctx := context.Background()
	svc, tenant, _ := newAuthService(t)

	// Unknown-email logins share a lazily built timing-equalisation hash;
	// hammer that path concurrently, as live traffic does.
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := svc.Login(ctx, tenant, domain.RoleProponent, "ghost@example.com", "whatever", "")
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.ErrorIs(t, <-errs, ErrInvalidCredentials)
	}
}
