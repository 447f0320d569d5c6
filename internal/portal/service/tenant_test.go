package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSlug(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TenantService{Store: st}

	jau := seedTenant(t, st, "Jaú")
	seedTenant(t, st, "São Paulo")

	resolved, err := svc.ResolveSlug(ctx, "jau")
	require.NoError(t, err)
	require.Equal(t, jau.ID, resolved.ID)

	resolved, err = svc.ResolveSlug(ctx, "sao-paulo")
	require.NoError(t, err)
	require.Equal(t, "São Paulo", resolved.Name)
}

func TestResolveSlugMisses(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TenantService{Store: st}

	seedTenant(t, st, "Jaú")

	_, err := svc.ResolveSlug(ctx, "atlantida")
	require.ErrorIs(t, err, ErrTenantNotFound)

	_, err = svc.ResolveSlug(ctx, "")
	require.ErrorIs(t, err, ErrTenantNotFound)
}

func TestCreateTenantRejectsSlugCollision(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TenantService{Store: st}

	_, err := svc.CreateTenant(ctx, "São Paulo")
	require.NoError(t, err)

	// Different spelling, same derived slug.
	_, err = svc.CreateTenant(ctx, "Sao Paulo")
	require.ErrorIs(t, err, ErrSlugCollision)
}

func TestCreateTenantRejectsEmptySlug(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TenantService{Store: st}

	_, err := svc.CreateTenant(ctx, "!!!")
	require.ErrorIs(t, err, ErrValidation)
}
