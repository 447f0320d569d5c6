package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/mapacultural/fomenta/pkg/idx"
)

var validate = validator.New()

// AccountService creates and administers principal accounts.
type AccountService struct {
	Store store.Store
}

// RegisterInput is the self-service proponent registration payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterProponent creates a proponente principal. No token is issued; the
// caller logs in afterwards.
func (s *AccountService) RegisterProponent(
	ctx context.Context,
	tenant domain.Tenant,
	in RegisterInput,
) (domain.Principal, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	return s.createPrincipal(ctx, tenant, domain.RoleProponent, in.Name, in.Email, in.Password)
}

// CreateReviewer provisions a parecerista account with a generated initial
// password. Staff-only operation; the reviewer resets the password out of
// band before first use.
func (s *AccountService) CreateReviewer(
	ctx context.Context,
	tenant domain.Tenant,
	name, email string,
) (domain.Principal, string, error) {
	in := RegisterInput{Name: name, Email: email, Password: "placeholder"}
	if err := validate.Struct(in); err != nil {
		return domain.Principal{}, "", fmt.Errorf("%w: %s", ErrValidation, err)
	}

	password, err := cryptox.GeneratePassword()
	if err != nil {
		return domain.Principal{}, "", err
	}

	principal, err := s.createPrincipal(ctx, tenant, domain.RoleReviewer, name, email, password)
	if err != nil {
		return domain.Principal{}, "", err
	}
	return principal, password, nil
}

// CreateStaff provisions a staff account. Used by bootstrap and by existing
// staff adding colleagues.
func (s *AccountService) CreateStaff(
	ctx context.Context,
	tenant domain.Tenant,
	name, email, password string,
) (domain.Principal, error) {
	in := RegisterInput{Name: name, Email: email, Password: password}
	if err := validate.Struct(in); err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	return s.createPrincipal(ctx, tenant, domain.RoleStaff, name, email, password)
}

func (s *AccountService) createPrincipal(
	ctx context.Context,
	tenant domain.Tenant,
	role domain.Role,
	name, email, password string,
) (domain.Principal, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	principal := domain.Principal{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Role:         role,
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Principals().CreatePrincipal(ctx, principal); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Principal{}, ErrDuplicateEmail
		}
		return domain.Principal{}, fmt.Errorf("creating principal: %w", err)
	}

	return principal, nil
}

// SetPrincipalActive soft-deletes or restores an account within the staff
// caller's own tenant. Cross-tenant targets report as missing.
func (s *AccountService) SetPrincipalActive(
	ctx context.Context,
	tenantID, principalID string,
	active bool,
) error {
	principal, err := s.Store.Principals().GetPrincipalByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if principal.TenantID != tenantID {
		return ErrNotFound
	}

	return s.Store.Principals().SetActive(ctx, principalID, active)
}

// ListPrincipals returns all accounts of the staff caller's tenant.
func (s *AccountService) ListPrincipals(ctx context.Context, tenantID string) ([]domain.Principal, error) {
	return s.Store.Principals().ListByTenant(ctx, tenantID)
}
