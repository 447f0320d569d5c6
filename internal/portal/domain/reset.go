package domain

import "time"

// PasswordReset is a single-use, time-boxed credential replacement grant.
// Only the SHA-256 fingerprint of the opaque token is stored.
type PasswordReset struct {
	ID          string
	TenantID    string
	PrincipalID string
	TokenHash   string
	ExpiresAt   time.Time
	UsedAt      *time.Time
	CreatedAt   time.Time
}

// Consumable reports whether the reset can still be redeemed at now.
func (p PasswordReset) Consumable(now time.Time) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt)
}
