package sqlite

import (
	"context"

	"github.com/mapacultural/fomenta/internal/portal/domain"
)

type tenantsRepo struct {
	q dbtx
}

const tenantColumns = `id, name, active, created_at, updated_at`

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = ?`, id)

	var t domain.Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tenantsRepo) ListActiveTenants(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE active = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO tenants (id, name, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Active, t.CreatedAt, t.UpdatedAt)
	return mapConflict(err)
}

func (r *tenantsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
