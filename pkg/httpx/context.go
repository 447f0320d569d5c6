package httpx

import "context"

type ctxKey string

const (
	CtxKeyPrincipalID ctxKey = "principal_id"
	CtxKeyRole        ctxKey = "role"
	CtxKeyTenantID    ctxKey = "tenant_id"
	CtxKeyClaims      ctxKey = "claims" // full jwtx.Claims when needed
)

// PrincipalIDFromCtx returns the verified principal id, or "" when the
// request was not authenticated.
func PrincipalIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyPrincipalID).(string); ok {
		return v
	}
	return ""
}

// RoleFromCtx returns the verified role claim, or "".
func RoleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}

// TenantIDFromCtx returns the verified tenant claim, or "".
func TenantIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyTenantID).(string); ok {
		return v
	}
	return ""
}
