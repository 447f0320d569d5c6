package service

import (
	"context"
	"errors"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
)

// resolveProjectOwnership walks the chain Project -> Proponent -> Principal
// from storage and requires it to terminate at the verified principal.
// Request-supplied owner ids are never consulted; the chain is re-derived
// hop by hop and a broken link at any hop rejects the whole operation.
//
// Error mapping hides cross-tenant existence: a project under another
// tenant reports exactly like a missing project (ErrNotFound), while an
// owner mismatch inside the caller's own tenant is ErrForbidden.
//
// Must run inside the same transaction as the mutation it gates, so the
// check and the write are atomic.
func resolveProjectOwnership(
	ctx context.Context,
	tx store.Tx,
	projectID string,
	principal domain.Principal,
) (domain.Project, error) {
	project, err := tx.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrNotFound
		}
		return domain.Project{}, err
	}

	if project.TenantID != principal.TenantID {
		return domain.Project{}, ErrNotFound
	}

	proponent, err := tx.Proponents().GetProponentByID(ctx, project.ProponentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Dangling hop; never a partial allow.
			return domain.Project{}, ErrForbidden
		}
		return domain.Project{}, err
	}

	if proponent.TenantID != principal.TenantID || proponent.PrincipalID != principal.ID {
		return domain.Project{}, ErrForbidden
	}

	return project, nil
}

// resolveProponentOwnership checks the single-hop chain for operations
// targeting a proponent entity directly.
func resolveProponentOwnership(
	ctx context.Context,
	st store.Store,
	proponentID string,
	principal domain.Principal,
) (domain.Proponent, error) {
	proponent, err := st.Proponents().GetProponentByID(ctx, proponentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Proponent{}, ErrNotFound
		}
		return domain.Proponent{}, err
	}

	if proponent.TenantID != principal.TenantID {
		return domain.Proponent{}, ErrNotFound
	}
	if proponent.PrincipalID != principal.ID {
		return domain.Proponent{}, ErrForbidden
	}

	return proponent, nil
}
