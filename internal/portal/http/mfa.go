package http

import (
	"encoding/json"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
)

// MFAHandler handles staff TOTP enrolment. Enrolled secrets only start
// gating logins after a successful activation proof.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/enroll.
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrolment, err := h.MFAService.Enroll(ctx, principal)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.MFAEnrollResponse{
		Secret: enrolment.Secret,
		URL:    enrolment.ProvingURL,
	})
}

// HandleActivate handles POST /v1/mfa/activate.
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req portalsdk.MFAActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	if err := h.MFAService.Activate(ctx, principal, req.Code); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
