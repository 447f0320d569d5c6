package http

import (
	"errors"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
	"github.com/mapacultural/fomenta/pkg/slogx"
)

// Role path segments accepted by tenant-scoped routes.
const (
	roleStaff     = string(domain.RoleStaff)
	roleProponent = string(domain.RoleProponent)
	roleReviewer  = string(domain.RoleReviewer)
)

// resolveTenant maps the {slug} path segment to an active tenant. On
// failure it writes the error response and returns ok=false.
func resolveTenant(w http.ResponseWriter, r *http.Request, ts *service.TenantService) (domain.Tenant, bool) {
	ctx := r.Context()

	tenant, err := ts.ResolveSlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			portalsdk.ErrTenantNotFound.WriteError(w)
			return domain.Tenant{}, false
		}
		slogx.FromContext(ctx).Error("tenant resolution failed", "err", err)
		portalsdk.ErrServer.WriteError(w)
		return domain.Tenant{}, false
	}
	return tenant, true
}

// resolveRole maps the {role} path segment to a known principal kind. An
// unknown segment is a routing miss, not an authorization problem: 404.
func resolveRole(w http.ResponseWriter, r *http.Request) (domain.Role, bool) {
	role, ok := domain.ParseRole(r.PathValue("role"))
	if !ok {
		portalsdk.ErrNotFound.WriteError(w)
		return "", false
	}
	return role, true
}
