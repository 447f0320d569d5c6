package service

import "errors"

var (
	// ErrInvalidCredentials covers every authentication failure: unknown
	// email, wrong password, inactive account, bad or missing TOTP code,
	// stale token epoch. Callers get one generic failure so none of those
	// causes is distinguishable from outside.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrForbidden is an authorization failure: a valid identity acting on
	// something it does not own or with the wrong role.
	ErrForbidden = errors.New("forbidden")

	// ErrTenantNotFound means the slug resolved to no active tenant. Fatal
	// for any auth flow; there is never a fallback tenant.
	ErrTenantNotFound = errors.New("tenant_not_found")

	// ErrNotFound is a missing resource within the caller's own scope.
	ErrNotFound = errors.New("not_found")

	// ErrDuplicateEmail reports a registration conflict within
	// (tenant, kind).
	ErrDuplicateEmail = errors.New("duplicate_email")

	// ErrValidation reports malformed input.
	ErrValidation = errors.New("validation_failed")

	// ErrResetInvalid covers unknown, expired and already-used reset
	// tokens alike.
	ErrResetInvalid = errors.New("reset_token_invalid")

	// ErrProjectNotEditable means the project left draft status.
	ErrProjectNotEditable = errors.New("project_not_editable")

	// ErrSlugCollision means a new tenant's name derives a slug an
	// existing tenant already occupies.
	ErrSlugCollision = errors.New("tenant_slug_collision")
)
