package http

import (
	"encoding/json"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
	"github.com/mapacultural/fomenta/pkg/slogx"
)

// PasswordResetHandler handles the two-step reset flow. The request leg
// answers 202 whether or not the account exists; the issued token travels
// out of band (there is no mail delivery here), so only its fingerprint is
// logged for the operator.
type PasswordResetHandler struct {
	TenantService *service.TenantService
	ResetService  *service.PasswordResetService
}

// HandleRequest handles POST /v1/t/{slug}/{role}/password-reset.
func (h *PasswordResetHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := resolveTenant(w, r, h.TenantService)
	if !ok {
		return
	}
	role, ok := resolveRole(w, r)
	if !ok {
		return
	}

	var req portalsdk.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	token, err := h.ResetService.Request(ctx, tenant, role, req.Email)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if token != "" {
		slogx.FromContext(ctx).Info("reset token minted",
			"tenant_id", tenant.ID,
			"role", string(role),
			"token_fingerprint", cryptox.FingerprintToken(token))
	}

	// Same answer for known and unknown accounts.
	w.WriteHeader(http.StatusAccepted)
}

// HandleConfirm handles POST /v1/t/{slug}/{role}/password-reset/confirm.
func (h *PasswordResetHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := resolveTenant(w, r, h.TenantService)
	if !ok {
		return
	}
	role, ok := resolveRole(w, r)
	if !ok {
		return
	}

	var req portalsdk.ResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	if err := h.ResetService.Confirm(ctx, tenant, role, req.Token, req.Password); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
