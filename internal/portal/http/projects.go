package http

import (
	"encoding/json"
	"net/http"

	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
)

// ProjectsHandler handles the proponent-facing project endpoints. Every
// mutation goes through the ownership resolver: the project id from the URL
// is only a lookup key, never proof of access.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleCreate handles POST /v1/projects.
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req portalsdk.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		portalsdk.ErrValidation.WriteError(w)
		return
	}
	if req.ProponentID == "" {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	project, err := h.ProjectService.CreateProject(ctx, principal, req.ProponentID, service.ProjectInput{
		Title:   req.Title,
		Summary: req.Summary,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, projectInfo(project))
}

// HandleList handles GET /v1/projects.
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	projects, err := h.ProjectService.ListMine(ctx, principal)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectInfos(projects))
}

// HandleUpdate handles PUT /v1/projects/{id}.
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req portalsdk.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		portalsdk.ErrValidation.WriteError(w)
		return
	}

	project, err := h.ProjectService.UpdateProject(ctx, principal, r.PathValue("id"), service.ProjectInput{
		Title:   req.Title,
		Summary: req.Summary,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectInfo(project))
}

// HandleSubmit handles POST /v1/projects/{id}/submit.
func (h *ProjectsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := principalFrom(ctx)
	if !ok {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	project, err := h.ProjectService.SubmitProject(ctx, principal, r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectInfo(project))
}
