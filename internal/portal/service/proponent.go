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

// ProponentService manages the proponent entities a proponente principal
// submits projects through.
type ProponentService struct {
	Store store.Store
}

// ProponentInput is the create-proponent payload.
type ProponentInput struct {
	LegalName string `json:"legal_name" validate:"required,max=200"`
	Document  string `json:"document" validate:"max=32"`
}

// CreateProponent registers a new proponent entity owned by the caller.
func (s *ProponentService) CreateProponent(
	ctx context.Context,
	principal domain.Principal,
	in ProponentInput,
) (domain.Proponent, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Proponent{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	now := time.Now().UTC()
	proponent := domain.Proponent{
		ID:          idx.New().String(),
		TenantID:    principal.TenantID,
		PrincipalID: principal.ID,
		LegalName:   strings.TrimSpace(in.LegalName),
		Document:    strings.TrimSpace(in.Document),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Proponents().CreateProponent(ctx, proponent); err != nil {
		return domain.Proponent{}, fmt.Errorf("creating proponent: %w", err)
	}
	return proponent, nil
}

// ListMine returns the proponent entities owned by the caller.
func (s *ProponentService) ListMine(ctx context.Context, principal domain.Principal) ([]domain.Proponent, error) {
	return s.Store.Proponents().ListByPrincipal(ctx, principal.ID)
}
