package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/pkg/idx"
)

// ProjectService manages grant projects. Every mutation re-derives the
// ownership chain and checks the status machine inside one transaction, so
// the check and the write cannot be interleaved by a concurrent request.
type ProjectService struct {
	Store store.Store
}

// ProjectInput is the create/update payload.
type ProjectInput struct {
	Title   string `json:"title" validate:"required,max=300"`
	Summary string `json:"summary" validate:"max=5000"`
}

// CreateProject opens a draft under one of the caller's proponent entities.
// The proponent id from the request is a lookup hint only; ownership is
// verified against storage before anything is written.
func (s *ProjectService) CreateProject(
	ctx context.Context,
	principal domain.Principal,
	proponentID string,
	in ProjectInput,
) (domain.Project, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Project{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	proponent, err := resolveProponentOwnership(ctx, s.Store, proponentID, principal)
	if err != nil {
		return domain.Project{}, err
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:          idx.New().String(),
		TenantID:    proponent.TenantID,
		ProponentID: proponent.ID,
		Title:       strings.TrimSpace(in.Title),
		Summary:     strings.TrimSpace(in.Summary),
		Status:      domain.ProjectDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Projects().CreateProject(ctx, project); err != nil {
		return domain.Project{}, fmt.Errorf("creating project: %w", err)
	}

	return project, nil
}

// UpdateProject rewrites a draft's content. Ownership and draft status are
// checked transactionally with the write.
func (s *ProjectService) UpdateProject(
	ctx context.Context,
	principal domain.Principal,
	projectID string,
	in ProjectInput,
) (domain.Project, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Project{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	var updated domain.Project
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		project, err := resolveProjectOwnership(ctx, tx, projectID, principal)
		if err != nil {
			return err
		}

		if !project.Status.Editable() {
			return ErrProjectNotEditable
		}

		title := strings.TrimSpace(in.Title)
		summary := strings.TrimSpace(in.Summary)
		now := time.Now().UTC()
		if err := tx.Projects().UpdateProjectContent(ctx, project.ID, title, summary, now); err != nil {
			return err
		}

		updated = project
		updated.Title = title
		updated.Summary = summary
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}

	return updated, nil
}

// SubmitProject moves a draft to submitted, after which the proponent can
// no longer edit it.
func (s *ProjectService) SubmitProject(
	ctx context.Context,
	principal domain.Principal,
	projectID string,
) (domain.Project, error) {
	var submitted domain.Project
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		project, err := resolveProjectOwnership(ctx, tx, projectID, principal)
		if err != nil {
			return err
		}

		if project.Status != domain.ProjectDraft {
			return ErrProjectNotEditable
		}

		now := time.Now().UTC()
		if err := tx.Projects().UpdateProjectStatus(ctx, project.ID, domain.ProjectSubmitted, now); err != nil {
			return err
		}

		submitted = project
		submitted.Status = domain.ProjectSubmitted
		submitted.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}

	return submitted, nil
}

// ListMine returns the caller's projects across all their proponent
// entities.
func (s *ProjectService) ListMine(ctx context.Context, principal domain.Principal) ([]domain.Project, error) {
	proponents, err := s.Store.Proponents().ListByPrincipal(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	var projects []domain.Project
	for _, proponent := range proponents {
		batch, err := s.Store.Projects().ListByProponent(ctx, proponent.ID)
		if err != nil {
			return nil, err
		}
		projects = append(projects, batch...)
	}
	return projects, nil
}

// ListTenant returns every project of the staff caller's tenant.
func (s *ProjectService) ListTenant(ctx context.Context, tenantID string) ([]domain.Project, error) {
	return s.Store.Projects().ListByTenant(ctx, tenantID, nil)
}

// ListForReview returns the tenant's projects a reviewer may see: those
// already handed over for evaluation, never drafts.
func (s *ProjectService) ListForReview(ctx context.Context, tenantID string) ([]domain.Project, error) {
	return s.Store.Projects().ListByTenant(ctx, tenantID, []domain.ProjectStatus{
		domain.ProjectSubmitted,
		domain.ProjectUnderReview,
		domain.ProjectFinalized,
	})
}
