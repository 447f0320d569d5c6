package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
)

type passwordResetsRepo struct {
	q dbtx
}

func (r *passwordResetsRepo) CreatePasswordReset(ctx context.Context, pr domain.PasswordReset) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO password_resets (id, tenant_id, principal_id, token_hash,
		   expires_at, used_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pr.ID, pr.TenantID, pr.PrincipalID, pr.TokenHash,
		pr.ExpiresAt, nullableTime(pr.UsedAt), pr.CreatedAt)
	return mapConflict(err)
}

func (r *passwordResetsRepo) GetPasswordResetByTokenHash(
	ctx context.Context,
	hash string,
) (domain.PasswordReset, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, tenant_id, principal_id, token_hash, expires_at, used_at, created_at
		 FROM password_resets WHERE token_hash = ?`, hash)

	var (
		pr     domain.PasswordReset
		usedAt sql.NullTime
	)
	err := row.Scan(&pr.ID, &pr.TenantID, &pr.PrincipalID, &pr.TokenHash,
		&pr.ExpiresAt, &usedAt, &pr.CreatedAt)
	if err != nil {
		return domain.PasswordReset{}, mapNotFound(err)
	}
	pr.UsedAt = mapNullTimePtr(usedAt)
	return pr, nil
}

// MarkPasswordResetUsed consumes the reset. The used_at IS NULL predicate
// makes double-redemption lose the race even under concurrent confirms.
func (r *passwordResetsRepo) MarkPasswordResetUsed(ctx context.Context, id string, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE password_resets SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		at, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *passwordResetsRepo) DeleteExpiredPasswordResets(ctx context.Context, before time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM password_resets WHERE expires_at < ? OR used_at IS NOT NULL`, before)
	return err
}
