package service

import (
	"context"
	"testing"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/pkg/jwtx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestMFAEnrolmentLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tenant := seedTenant(t, st, "Jaú")
	staff := seedPrincipal(t, st, tenant, domain.RoleStaff, "chefe@example.com", "s3cret-pass")

	mfa := &MFAService{Store: st, Issuer: "fomenta-test"}
	auth := &AuthService{Store: st, Signer: newTestSigner(t), Issuer: "fomenta-test", TTL: jwtx.DefaultAccessTokenTTL}

	enrolment, err := mfa.Enroll(ctx, staff)
	require.NoError(t, err)
	require.NotEmpty(t, enrolment.Secret)
	require.Contains(t, enrolment.ProvingURL, "otpauth://")

	// Pending secrets must not gate logins yet: a bad scan would
	// otherwise lock the account.
	_, err = auth.Login(ctx, tenant, domain.RoleStaff, "chefe@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	// Activation needs a valid proof.
	staffPending, err := st.Principals().GetPrincipalByID(ctx, staff.ID)
	require.NoError(t, err)
	require.Error(t, mfa.Activate(ctx, staffPending, "000000"))

	code, err := totp.GenerateCode(enrolment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.Activate(ctx, staffPending, code))

	// From now on, password alone is not enough.
	_, err = auth.Login(ctx, tenant, domain.RoleStaff, "chefe@example.com", "s3cret-pass", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	code, err = totp.GenerateCode(enrolment.Secret, time.Now())
	require.NoError(t, err)
	_, err = auth.Login(ctx, tenant, domain.RoleStaff, "chefe@example.com", "s3cret-pass", code)
	require.NoError(t, err)
}

func TestMFAIsStaffOnly(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tenant := seedTenant(t, st, "Jaú")
	proponent := seedPrincipal(t, st, tenant, domain.RoleProponent, "ana@example.com", "s3cret-pass")

	mfa := &MFAService{Store: st, Issuer: "fomenta-test"}

	_, err := mfa.Enroll(ctx, proponent)
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, mfa.Activate(ctx, proponent, "123456"), ErrForbidden)
}
