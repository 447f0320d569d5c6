package domain

import "time"

// Proponent is the legal entity (person or organisation) a proponent user
// submits projects through. It is the intermediate hop of the ownership
// chain: Project -> Proponent -> Principal.
type Proponent struct {
	ID          string
	TenantID    string
	PrincipalID string // owning proponente principal
	LegalName   string
	Document    string // CPF/CNPJ, free-form here
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectStatus is the lifecycle position of a grant project.
type ProjectStatus string

const (
	// ProjectDraft is the only status in which the proponent may edit.
	ProjectDraft ProjectStatus = "draft"
	// ProjectSubmitted means handed over for evaluation.
	ProjectSubmitted ProjectStatus = "submitted"
	// ProjectUnderReview means a reviewer has picked it up.
	ProjectUnderReview ProjectStatus = "under_review"
	// ProjectFinalized means evaluation concluded, immutable.
	ProjectFinalized ProjectStatus = "finalized"
)

// Editable reports whether the proponent may still change the project.
func (s ProjectStatus) Editable() bool { return s == ProjectDraft }

// Project is a grant application owned, through its proponent entity, by a
// proponente principal.
type Project struct {
	ID          string
	TenantID    string
	ProponentID string
	Title       string
	Summary     string
	Status      ProjectStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
