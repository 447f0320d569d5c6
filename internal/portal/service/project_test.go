package service

import (
	"context"
	"testing"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/pkg/idx"
	"github.com/stretchr/testify/require"
)

type projectFixture struct {
	store     store.Store
	projects  *ProjectService
	tenant    domain.Tenant
	owner     domain.Principal
	proponent domain.Proponent
}

func newProjectFixture(t *testing.T) projectFixture {
	t.Helper()

	st := newTestStore(t)
	tenant := seedTenant(t, st, "Jaú")
	owner := seedPrincipal(t, st, tenant, domain.RoleProponent, "ana@example.com", "s3cret-pass")
	proponent := seedProponent(t, st, owner)

	return projectFixture{
		store:     st,
		projects:  &ProjectService{Store: st},
		tenant:    tenant,
		owner:     owner,
		proponent: proponent,
	}
}

func TestCreateProjectStartsAsDraft(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)

	project, err := fx.projects.CreateProject(ctx, fx.owner, fx.proponent.ID, ProjectInput{
		Title:   "Oficina de Teatro",
		Summary: "Oficinas gratuitas.",
	})
	require.NoError(t, err)
	require.Equal(t, domain.ProjectDraft, project.Status)
	require.Equal(t, fx.proponent.ID, project.ProponentID)
	require.Equal(t, fx.tenant.ID, project.TenantID)
}

func TestCreateProjectRejectsForeignProponent(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)

	// Another principal in the same tenant crafts a request naming a
	// proponent entity they do not own.
	intruder := seedPrincipal(t, fx.store, fx.tenant, domain.RoleProponent, "eva@example.com", "s3cret-pass")

	_, err := fx.projects.CreateProject(ctx, intruder, fx.proponent.ID, ProjectInput{Title: "Golpe"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateProjectOwnershipChain(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)
	project := seedProject(t, fx.store, fx.proponent, domain.ProjectDraft)

	// Owner may edit a draft.
	updated, err := fx.projects.UpdateProject(ctx, fx.owner, project.ID, ProjectInput{
		Title:   "Oficina de Teatro II",
		Summary: "Edição revista.",
	})
	require.NoError(t, err)
	require.Equal(t, "Oficina de Teatro II", updated.Title)

	// Same-tenant non-owner is refused with 403 semantics.
	intruder := seedPrincipal(t, fx.store, fx.tenant, domain.RoleProponent, "eva@example.com", "s3cret-pass")
	_, err = fx.projects.UpdateProject(ctx, intruder, project.ID, ProjectInput{Title: "Golpe"})
	require.ErrorIs(t, err, ErrForbidden)

	// Missing project reports as not found.
	_, err = fx.projects.UpdateProject(ctx, fx.owner, "no-such-project", ProjectInput{Title: "X"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProjectHidesCrossTenantExistence(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)
	project := seedProject(t, fx.store, fx.proponent, domain.ProjectDraft)

	otherTenant := seedTenant(t, fx.store, "Outra Cidade")
	outsider := seedPrincipal(t, fx.store, otherTenant, domain.RoleProponent, "out@example.com", "s3cret-pass")

	// The project exists, but under another tenant: the answer must be
	// exactly the missing-resource answer, not a forbidden.
	_, err := fx.projects.UpdateProject(ctx, outsider, project.ID, ProjectInput{Title: "X"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProjectOnlyWhileDraft(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)
	project := seedProject(t, fx.store, fx.proponent, domain.ProjectSubmitted)

	_, err := fx.projects.UpdateProject(ctx, fx.owner, project.ID, ProjectInput{Title: "Tarde demais"})
	require.ErrorIs(t, err, ErrProjectNotEditable)
}

func TestSubmitProjectTransition(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)
	project := seedProject(t, fx.store, fx.proponent, domain.ProjectDraft)

	submitted, err := fx.projects.SubmitProject(ctx, fx.owner, project.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ProjectSubmitted, submitted.Status)

	// Submitting twice is a state conflict.
	_, err = fx.projects.SubmitProject(ctx, fx.owner, project.ID)
	require.ErrorIs(t, err, ErrProjectNotEditable)

	// And the draft-only edit gate now applies.
	_, err = fx.projects.UpdateProject(ctx, fx.owner, project.ID, ProjectInput{Title: "X"})
	require.ErrorIs(t, err, ErrProjectNotEditable)
}

func TestListForReviewExcludesDrafts(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)

	seedProject(t, fx.store, fx.proponent, domain.ProjectDraft)
	submitted := seedProject(t, fx.store, fx.proponent, domain.ProjectSubmitted)
	reviewing := seedProject(t, fx.store, fx.proponent, domain.ProjectUnderReview)

	visible, err := fx.projects.ListForReview(ctx, fx.tenant.ID)
	require.NoError(t, err)
	require.Len(t, visible, 2)

	ids := map[string]bool{}
	for _, p := range visible {
		ids[p.ID] = true
	}
	require.True(t, ids[submitted.ID])
	require.True(t, ids[reviewing.ID])
}

func TestListMineSpansProponents(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)

	second := seedProponent(t, fx.store, fx.owner)
	seedProject(t, fx.store, fx.proponent, domain.ProjectDraft)
	seedProject(t, fx.store, second, domain.ProjectDraft)

	mine, err := fx.projects.ListMine(ctx, fx.owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)
}

func TestUpdateProjectRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	fx := newProjectFixture(t)

	stale := time.Now().UTC().Add(-time.Hour)
	project := domain.Project{
		ID:          idx.New().String(),
		TenantID:    fx.tenant.ID,
		ProponentID: fx.proponent.ID,
		Title:       "Oficina de Teatro",
		Status:      domain.ProjectDraft,
		CreatedAt:   stale,
		UpdatedAt:   stale,
	}
	require.NoError(t, fx.store.Projects().CreateProject(ctx, project))

	updated, err := fx.projects.UpdateProject(ctx, fx.owner, project.ID, ProjectInput{Title: "Oficina de Circo"})
	require.NoError(t, err)
	require.True(t, updated.UpdatedAt.After(stale))

	// The returned timestamp is the one written to the row.
	reloaded, err := fx.store.Projects().GetProjectByID(ctx, project.ID)
	require.NoError(t, err)
	require.WithinDuration(t, updated.UpdatedAt, reloaded.UpdatedAt, time.Second)

	submitted, err := fx.projects.SubmitProject(ctx, fx.owner, project.ID)
	require.NoError(t, err)
	require.True(t, submitted.UpdatedAt.After(stale))
}
