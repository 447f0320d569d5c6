package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store/drivers/sqlite"
	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/mapacultural/fomenta/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// Login records last_access best-effort; a write failure there must not
// cost the user their token. sqlmock injects the failure.
func TestLoginSurvivesLastAccessWriteFailure(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hash, err := cryptox.HashPassword("s3cret-pass")
	require.NoError(t, err)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "role", "name", "email", "password_hash",
		"active", "token_epoch", "mfa_secret", "last_access", "created_at", "updated_at",
	}).AddRow(
		"principal-1", "tenant-1", string(domain.RoleProponent), "Ana", "ana@example.com", hash,
		true, int64(0), nil, nil, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM principals").
		WithArgs("tenant-1", string(domain.RoleProponent), "ana@example.com").
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE principals SET last_access").
		WillReturnError(errors.New("disk I/O error"))

	svc := &AuthService{
		Store:  sqlite.NewStoreWithDB(db),
		Signer: newTestSigner(t),
		Issuer: "fomenta-test",
		TTL:    jwtx.DefaultAccessTokenTTL,
	}

	result, err := svc.Login(ctx, domain.Tenant{ID: "tenant-1"}, domain.RoleProponent,
		"ana@example.com", "s3cret-pass", "")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	require.NoError(t, mock.ExpectationsWereMet())
}
