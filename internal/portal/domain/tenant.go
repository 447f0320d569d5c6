package domain

import "time"

// Tenant is one municipality's isolated scope. Every principal and resource
// references exactly one tenant; nothing is ever visible across tenants.
//
// Tenants carry no slug column. The public slug is always derived from Name,
// so renaming a tenant changes its URL but can never desynchronise the two.
type Tenant struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
