package portalsdk

import "time"

// Principal kinds, mirroring the server's role discriminant.
const (
	RoleStaff     = "staff"
	RoleProponent = "proponente"
	RoleReviewer  = "parecerista"
)

// LoginRequest is the per-role login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"` // staff with TOTP enrolled
}

// PrincipalInfo is the public view of an account.
type PrincipalInfo struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	Role       string     `json:"role"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	CreatedAt  time.Time  `json:"created_at"`
	LastAccess *time.Time `json:"last_access,omitempty"`
}

// TenantInfo is the public view of a municipality.
type TenantInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// LoginResponse carries the bearer token and the resolved profile.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Principal PrincipalInfo `json:"principal"`
	Tenant    TenantInfo    `json:"tenant"`
}

// RegisterRequest is the self-service proponent registration payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetRequest asks for a password-reset token.
type ResetRequest struct {
	Email string `json:"email"`
}

// ResetConfirmRequest redeems a reset token.
type ResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// MeResponse is the authenticated profile endpoint's payload.
type MeResponse struct {
	Principal PrincipalInfo `json:"principal"`
	Tenant    TenantInfo    `json:"tenant"`
}

// ProponentRequest creates a proponent entity.
type ProponentRequest struct {
	LegalName string `json:"legal_name"`
	Document  string `json:"document,omitempty"`
}

// ProponentInfo is the public view of a proponent entity.
type ProponentInfo struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	PrincipalID string    `json:"principal_id"`
	LegalName   string    `json:"legal_name"`
	Document    string    `json:"document"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectRequest creates or updates a project.
type ProjectRequest struct {
	ProponentID string `json:"proponent_id,omitempty"` // create only
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
}

// ProjectInfo is the public view of a project.
type ProjectInfo struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	ProponentID string    `json:"proponent_id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReviewerCreatedResponse returns the provisioned reviewer account and its
// generated initial password (shown exactly once).
type ReviewerCreatedResponse struct {
	Principal       PrincipalInfo `json:"principal"`
	InitialPassword string        `json:"initial_password"`
}

// MFAEnrollResponse carries the fresh TOTP secret for the authenticator.
type MFAEnrollResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// MFAActivateRequest proves the authenticator works.
type MFAActivateRequest struct {
	Code string `json:"code"`
}
