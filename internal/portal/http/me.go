package http

import (
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
	"github.com/mapacultural/fomenta/pkg/slogx"
)

// MeHandler handles GET /v1/me. Clients use it to materialise a session
// from a stored token: the response is authoritative state, not an echo of
// the token's claims.
type MeHandler struct {
	TenantService *service.TenantService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	tenant, err := h.TenantService.GetTenant(ctx, principal.TenantID)
	if err != nil {
		slogx.FromContext(ctx).Error("loading tenant", "tenant_id", principal.TenantID, "err", err)
		portalsdk.ErrServer.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.MeResponse{
		Principal: principalInfo(principal),
		Tenant:    tenantInfo(tenant),
	})
}
