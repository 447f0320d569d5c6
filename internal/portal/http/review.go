package http

import (
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
)

// ReviewHandler handles the reviewer surface. Reviewers read submitted
// projects; drafts stay private to their proponents.
type ReviewHandler struct {
	ProjectService *service.ProjectService
}

// HandleListProjects handles GET /v1/review/projects.
func (h *ReviewHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	projects, err := h.ProjectService.ListForReview(ctx, principal.TenantID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectInfos(projects))
}
