package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/pkg/idx"
	"github.com/mapacultural/fomenta/pkg/slugx"
)

// TenantService resolves municipality slugs and manages tenant records.
//
// Slugs are never stored: resolution derives the slug of every active tenant
// and compares. Tenant counts are small (one per municipality using the
// portal) so the scan is cheap, and a rename can never leave a stale slug
// behind.
type TenantService struct {
	Store store.Store
}

// ResolveSlug maps a URL slug to its tenant. A miss is ErrTenantNotFound and
// callers must treat it as fatal for the whole auth flow.
func (s *TenantService) ResolveSlug(ctx context.Context, slug string) (domain.Tenant, error) {
	if slug == "" {
		return domain.Tenant{}, ErrTenantNotFound
	}

	tenants, err := s.Store.Tenants().ListActiveTenants(ctx)
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("listing tenants: %w", err)
	}

	for _, t := range tenants {
		if slugx.Matches(slug, t.Name) {
			return t, nil
		}
	}

	return domain.Tenant{}, ErrTenantNotFound
}

// GetTenant loads a tenant by id.
func (s *TenantService) GetTenant(ctx context.Context, id string) (domain.Tenant, error) {
	tenant, err := s.Store.Tenants().GetTenantByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		return domain.Tenant{}, err
	}
	return tenant, nil
}

// CreateTenant registers a municipality, refusing names whose derived slug
// is empty or collides with an existing tenant's. Collisions would make one
// of the two tenants unreachable by slug.
func (s *TenantService) CreateTenant(ctx context.Context, name string) (domain.Tenant, error) {
	slug := slugx.Derive(name)
	if slug == "" {
		return domain.Tenant{}, fmt.Errorf("%w: name %q derives an empty slug", ErrValidation, name)
	}

	existing, err := s.Store.Tenants().ListActiveTenants(ctx)
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("listing tenants: %w", err)
	}
	for _, t := range existing {
		if slugx.Derive(t.Name) == slug {
			return domain.Tenant{}, fmt.Errorf("%w: %q and %q both derive %q",
				ErrSlugCollision, t.Name, name, slug)
		}
	}

	now := time.Now().UTC()
	tenant := domain.Tenant{
		ID:        idx.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Tenants().CreateTenant(ctx, tenant); err != nil {
		return domain.Tenant{}, fmt.Errorf("creating tenant: %w", err)
	}

	return tenant, nil
}
