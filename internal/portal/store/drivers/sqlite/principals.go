package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
)

type principalsRepo struct {
	q dbtx
}

const principalColumns = `id, tenant_id, role, name, email, password_hash,
	active, token_epoch, mfa_secret, last_access, created_at, updated_at`

func scanPrincipal(row interface{ Scan(...any) error }) (domain.Principal, error) {
	var (
		p          domain.Principal
		role       string
		mfaSecret  sql.NullString
		lastAccess sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.TenantID, &role, &p.Name, &p.Email, &p.PasswordHash,
		&p.Active, &p.TokenEpoch, &mfaSecret, &lastAccess, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Principal{}, err
	}

	p.Role = domain.Role(role)
	p.MFASecret = mapNullStringPtr(mfaSecret)
	p.LastAccess = mapNullTimePtr(lastAccess)
	return p, nil
}

func (r *principalsRepo) GetPrincipalByID(ctx context.Context, id string) (domain.Principal, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+principalColumns+` FROM principals WHERE id = ?`, id)

	p, err := scanPrincipal(row)
	if err != nil {
		return domain.Principal{}, mapNotFound(err)
	}
	return p, nil
}

func (r *principalsRepo) GetPrincipalByEmail(
	ctx context.Context,
	tenantID string,
	role domain.Role,
	email string,
) (domain.Principal, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+principalColumns+` FROM principals
		 WHERE tenant_id = ? AND role = ? AND email = ?`,
		tenantID, string(role), email)

	p, err := scanPrincipal(row)
	if err != nil {
		return domain.Principal{}, mapNotFound(err)
	}
	return p, nil
}

func (r *principalsRepo) CreatePrincipal(ctx context.Context, p domain.Principal) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO principals (id, tenant_id, role, name, email, password_hash,
		   active, token_epoch, mfa_secret, last_access, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, string(p.Role), p.Name, p.Email, p.PasswordHash,
		p.Active, p.TokenEpoch, mapOptionalString(p.MFASecret), nullableTime(p.LastAccess),
		p.CreatedAt, p.UpdatedAt)
	return mapConflict(err)
}

func (r *principalsRepo) UpdatePasswordHash(ctx context.Context, principalID, newHash string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE principals
		 SET password_hash = ?, token_epoch = token_epoch + 1, updated_at = ?
		 WHERE id = ?`,
		newHash, time.Now().UTC(), principalID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *principalsRepo) TouchLastAccess(ctx context.Context, principalID string, at time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE principals SET last_access = ? WHERE id = ?`, at, principalID)
	return err
}

func (r *principalsRepo) SetActive(ctx context.Context, principalID string, active bool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE principals SET active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now().UTC(), principalID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *principalsRepo) UpdateMFASecret(ctx context.Context, principalID, secret string) error {
	var stored sql.NullString
	if secret != "" {
		stored = sql.NullString{String: secret, Valid: true}
	}

	res, err := r.q.ExecContext(ctx,
		`UPDATE principals SET mfa_secret = ?, updated_at = ? WHERE id = ?`,
		stored, time.Now().UTC(), principalID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *principalsRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.Principal, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+principalColumns+` FROM principals
		 WHERE tenant_id = ? ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var principals []domain.Principal
	for rows.Next() {
		p, err := scanPrincipal(rows)
		if err != nil {
			return nil, err
		}
		principals = append(principals, p)
	}
	return principals, rows.Err()
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
