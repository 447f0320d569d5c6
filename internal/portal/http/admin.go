package http

import (
	"encoding/json"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
)

// AdminHandler handles the staff-only endpoints. All operations are scoped
// to the caller's own tenant; staff of one municipality see nothing of
// another.
type AdminHandler struct {
	TenantService  *service.TenantService
	AccountService *service.AccountService
	ProjectService *service.ProjectService
}

// HandleListProjects handles GET /v1/admin/projects: every project in the
// tenant, all statuses.
func (h *AdminHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	projects, err := h.ProjectService.ListTenant(ctx, principal.TenantID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectInfos(projects))
}

// HandleListPrincipals handles GET /v1/admin/principals.
func (h *AdminHandler) HandleListPrincipals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	principals, err := h.AccountService.ListPrincipals(ctx, principal.TenantID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	out := make([]portalsdk.PrincipalInfo, 0, len(principals))
	for _, p := range principals {
		out = append(out, principalInfo(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type createReviewerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleCreateReviewer handles POST /v1/admin/reviewers. The generated
// initial password appears in this response and nowhere else; the reviewer
// is expected to rotate it through the reset flow.
func (h *AdminHandler) HandleCreateReviewer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req createReviewerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	tenant, err := h.TenantService.GetTenant(ctx, staff.TenantID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	reviewer, password, err := h.AccountService.CreateReviewer(ctx, tenant, req.Name, req.Email)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, portalsdk.ReviewerCreatedResponse{
		Principal:       principalInfo(reviewer),
		InitialPassword: password,
	})
}

// HandleDeactivate handles POST /v1/admin/principals/{id}/deactivate.
// Existing tokens for the target die on their next request via the session
// guard's active check.
func (h *AdminHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	targetID := r.PathValue("id")
	if targetID == staff.ID {
		// Locking out the last staff account is unrecoverable without
		// database surgery.
		portalsdk.ErrConflict.WriteError(w)
		return
	}

	if err := h.AccountService.SetPrincipalActive(ctx, staff.TenantID, targetID, false); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
