package http

import (
	"encoding/json"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/obs"
	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
)

// LoginHandler handles POST /v1/t/{slug}/{role}/login.
//
// The (slug, role) pair scopes the credential lookup; an email that exists
// under another tenant or kind is simply an unknown email here. All
// credential failures share one 401 body.
type LoginHandler struct {
	TenantService *service.TenantService
	AuthService   *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := resolveTenant(w, r, h.TenantService)
	if !ok {
		return
	}
	role, ok := resolveRole(w, r)
	if !ok {
		return
	}

	var req portalsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		portalsdk.ErrValidation.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	result, err := h.AuthService.Login(ctx, tenant, role, req.Email, req.Password, req.OTP)
	if err != nil {
		obs.RecordLogin(string(role), "failure")
		writeServiceError(ctx, w, err)
		return
	}
	obs.RecordLogin(string(role), "success")

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Principal: principalInfo(result.Principal),
		Tenant:    tenantInfo(tenant),
	})
}
