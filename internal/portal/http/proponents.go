package http

import (
	"encoding/json"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
)

// ProponentsHandler handles the proponent-entity endpoints.
type ProponentsHandler struct {
	ProponentService *service.ProponentService
}

// HandleCreate handles POST /v1/proponents.
func (h *ProponentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req portalsdk.ProponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	proponent, err := h.ProponentService.CreateProponent(ctx, principal, service.ProponentInput{
		LegalName: req.LegalName,
		Document:  req.Document,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, proponentInfo(proponent))
}

// HandleList handles GET /v1/proponents. Only the caller's own entities
// come back; there is no cross-principal listing on this surface.
func (h *ProponentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	proponents, err := h.ProponentService.ListMine(ctx, principal)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	out := make([]portalsdk.ProponentInfo, 0, len(proponents))
	for _, p := range proponents {
		out = append(out, proponentInfo(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
