package domain

import (
	"strings"
	"time"
)

// Role discriminates the three disjoint principal kinds. The portal keeps
// one principals table with this tag instead of three parallel user tables;
// the tag decides which operations a token can reach.
type Role string

const (
	// RoleStaff is municipal staff administering grant calls.
	RoleStaff Role = "staff"
	// RoleProponent is a citizen or organisation submitting projects.
	RoleProponent Role = "proponente"
	// RoleReviewer is an external evaluator (parecerista).
	RoleReviewer Role = "parecerista"
)

// ParseRole validates a role string from a URL segment or claim.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStaff, RoleProponent, RoleReviewer:
		return Role(s), true
	default:
		return "", false
	}
}

// Principal is an authenticatable actor of one specific kind within one
// tenant. Email is unique per (tenant, role): the same person may hold a
// proponent account and a reviewer account under one municipality.
type Principal struct {
	ID           string
	TenantID     string
	Role         Role
	Name         string
	Email        string // stored lower-cased
	PasswordHash string // argon2id, PHC encoded
	Active       bool

	// TokenEpoch is bumped whenever the password changes. Tokens carry the
	// epoch they were minted under and go stale when it moves.
	TokenEpoch int64

	// MFASecret is a TOTP secret, staff accounts only. Nil when the second
	// factor is not enrolled.
	MFASecret *string

	LastAccess *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MFAPendingPrefix marks a TOTP secret that was generated but not yet
// proven by the account holder. Pending secrets are inert at login.
const MFAPendingPrefix = "pending:"

// MFAEnrolled reports whether login must also verify a TOTP code.
func (p Principal) MFAEnrolled() bool {
	return p.MFASecret != nil && *p.MFASecret != "" &&
		!strings.HasPrefix(*p.MFASecret, MFAPendingPrefix)
}
