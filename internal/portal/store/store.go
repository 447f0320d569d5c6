package store

import (
	"context"
	"errors"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep concerns tidy and let services depend
// on exactly the slices they need.
type Store interface {
	Tenants() Tenants
	Principals() Principals
	Proponents() Proponents
	Projects() Projects
	PasswordResets() PasswordResets

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST Commit() or Rollback() the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn inside a transaction, committing when fn returns
	// nil and rolling back otherwise. The ownership-check-then-mutate
	// sequences all run through this.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tenants interface {
	// GetTenantByID returns a tenant regardless of active flag.
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)

	// ListActiveTenants returns every active tenant. Slug resolution walks
	// this list and re-derives each candidate's slug.
	ListActiveTenants(ctx context.Context) ([]domain.Tenant, error)

	// CreateTenant inserts a new tenant (id is app-provided ULID).
	CreateTenant(ctx context.Context, t domain.Tenant) error

	// IsEmpty reports whether any tenant exists (bootstrap check).
	IsEmpty(ctx context.Context) (bool, error)
}

type Principals interface {
	// GetPrincipalByID returns a principal by primary key.
	GetPrincipalByID(ctx context.Context, id string) (domain.Principal, error)

	// GetPrincipalByEmail looks up by the (tenant, role, lower-cased email)
	// triple used during login.
	GetPrincipalByEmail(ctx context.Context, tenantID string, role domain.Role, email string) (domain.Principal, error)

	// CreatePrincipal inserts a new principal.
	CreatePrincipal(ctx context.Context, p domain.Principal) error

	// UpdatePasswordHash replaces the secret hash and bumps token_epoch,
	// invalidating every token minted before the change.
	UpdatePasswordHash(ctx context.Context, principalID, newHash string) error

	// TouchLastAccess records a successful login. Best effort; callers
	// ignore failures.
	TouchLastAccess(ctx context.Context, principalID string, at time.Time) error

	// SetActive flips the soft-delete flag.
	SetActive(ctx context.Context, principalID string, active bool) error

	// UpdateMFASecret sets (or clears, with "") the TOTP secret.
	UpdateMFASecret(ctx context.Context, principalID, secret string) error

	// ListByTenant returns all principals of one tenant, newest first.
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Principal, error)
}

type Proponents interface {
	// GetProponentByID returns a proponent entity by primary key.
	GetProponentByID(ctx context.Context, id string) (domain.Proponent, error)

	// CreateProponent inserts a new proponent entity.
	CreateProponent(ctx context.Context, p domain.Proponent) error

	// ListByPrincipal returns the proponent entities owned by a principal.
	ListByPrincipal(ctx context.Context, principalID string) ([]domain.Proponent, error)
}

type Projects interface {
	// GetProjectByID returns a project by primary key.
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// CreateProject inserts a new project in draft status.
	CreateProject(ctx context.Context, p domain.Project) error

	// UpdateProjectContent rewrites title/summary and stamps updated_at.
	// Status gating happens in the service inside the same transaction.
	UpdateProjectContent(ctx context.Context, projectID, title, summary string, updatedAt time.Time) error

	// UpdateProjectStatus moves the project to a new lifecycle status and
	// stamps updated_at.
	UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus, updatedAt time.Time) error

	// ListByProponent returns the projects of one proponent entity.
	ListByProponent(ctx context.Context, proponentID string) ([]domain.Project, error)

	// ListByTenant returns projects of a tenant; statuses filters when
	// non-empty.
	ListByTenant(ctx context.Context, tenantID string, statuses []domain.ProjectStatus) ([]domain.Project, error)
}

type PasswordResets interface {
	// CreatePasswordReset stores a new reset grant (token_hash only).
	CreatePasswordReset(ctx context.Context, r domain.PasswordReset) error

	// GetPasswordResetByTokenHash returns the reset row, used or not; the
	// service decides consumability so used and expired report alike.
	GetPasswordResetByTokenHash(ctx context.Context, hash string) (domain.PasswordReset, error)

	// MarkPasswordResetUsed stamps used_at. Returns ErrNotFound if the row
	// was already consumed, making redemption atomic.
	MarkPasswordResetUsed(ctx context.Context, id string, at time.Time) error

	// DeleteExpiredPasswordResets is housekeeping.
	DeleteExpiredPasswordResets(ctx context.Context, before time.Time) error
}
