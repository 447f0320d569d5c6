package sqlite

import (
	"context"

	"github.com/mapacultural/fomenta/internal/portal/domain"
)

type proponentsRepo struct {
	q dbtx
}

const proponentColumns = `id, tenant_id, principal_id, legal_name, document, created_at, updated_at`

func (r *proponentsRepo) GetProponentByID(ctx context.Context, id string) (domain.Proponent, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+proponentColumns+` FROM proponents WHERE id = ?`, id)

	var p domain.Proponent
	err := row.Scan(&p.ID, &p.TenantID, &p.PrincipalID, &p.LegalName, &p.Document,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Proponent{}, mapNotFound(err)
	}
	return p, nil
}

func (r *proponentsRepo) CreateProponent(ctx context.Context, p domain.Proponent) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO proponents (id, tenant_id, principal_id, legal_name, document,
		   created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.PrincipalID, p.LegalName, p.Document, p.CreatedAt, p.UpdatedAt)
	return mapConflict(err)
}

func (r *proponentsRepo) ListByPrincipal(ctx context.Context, principalID string) ([]domain.Proponent, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+proponentColumns+` FROM proponents
		 WHERE principal_id = ? ORDER BY created_at DESC`, principalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proponents []domain.Proponent
	for rows.Next() {
		var p domain.Proponent
		err := rows.Scan(&p.ID, &p.TenantID, &p.PrincipalID, &p.LegalName, &p.Document,
			&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		proponents = append(proponents, p)
	}
	return proponents, rows.Err()
}
