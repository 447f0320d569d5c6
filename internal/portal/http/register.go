package http

import (
	"encoding/json"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
)

// RegisterHandler handles POST /v1/t/{slug}/proponents/register, the only
// self-service account creation path. Staff and reviewer accounts are
// provisioned, never registered.
type RegisterHandler struct {
	TenantService  *service.TenantService
	AccountService *service.AccountService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := resolveTenant(w, r, h.TenantService)
	if !ok {
		return
	}

	var req portalsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	principal, err := h.AccountService.RegisterProponent(ctx, tenant, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, principalInfo(principal))
}
