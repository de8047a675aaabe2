package projectapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	authapi "taskflow/internal/auth/api"
	"taskflow/internal/httpapi"
	"taskflow/internal/project"
	"taskflow/internal/task"
)

// Handler serves the project resource. All routes sit behind the
// authorization gate; per-project access is decided by membership.
type Handler struct {
	log          *slog.Logger
	maxBodyBytes int64
	projects     project.Store
	tasks        task.Store
}

// NewHandler constructs a project Handler. The task store is needed so
// project deletion can drop the project's tasks in the in-memory mode,
// where no foreign keys cascade.
func NewHandler(log *slog.Logger, maxBodyBytes int64, projects project.Store, tasks task.Store) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if projects == nil || tasks == nil {
		return nil, errors.New("projectapi: nil store")
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handler{log: log, maxBodyBytes: maxBodyBytes, projects: projects, tasks: tasks}, nil
}

// Register wires project routes onto the mux, all behind the gate.
func (h *Handler) Register(mux *http.ServeMux, gate *authapi.Gate) {
	mux.Handle("GET /projects", gate.Require(http.HandlerFunc(h.handleList)))
	mux.Handle("POST /projects", gate.Require(http.HandlerFunc(h.handleCreate)))
	mux.Handle("GET /projects/{projectID}", gate.Require(http.HandlerFunc(h.handleGet)))
	mux.Handle("PATCH /projects/{projectID}", gate.Require(http.HandlerFunc(h.handlePatch)))
	mux.Handle("DELETE /projects/{projectID}", gate.Require(http.HandlerFunc(h.handleDelete)))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}

	ps, err := h.projects.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		h.log.Error("project.list.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}
	httpapi.WriteData(w, http.StatusOK, projectListResponse{Projects: toProjectResponses(ps)})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}

	var req createProjectRequest
	if err := httpapi.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		httpapi.WriteErr(w, h.log, httpapi.BadRequest("INVALID_JSON", "Invalid request body"))
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		httpapi.WriteErr(w, h.log, apiErr)
		return
	}

	p, err := h.projects.Create(r.Context(), project.CreateInput{
		OwnerID:     claims.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("project.create.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	h.log.Info("project.create.ok", "project_id", p.ID, "owner_id", claims.UserID)
	httpapi.WriteData(w, http.StatusOK, singleProjectResponse{Project: toProjectResponse(p)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}
	projectID := r.PathValue("projectID")

	m, err := MemberOf(r.Context(), h.projects, projectID, claims.UserID)
	if err != nil {
		httpapi.WriteErr(w, h.log, err)
		return
	}

	p, err := h.projects.GetByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			httpapi.WriteErr(w, h.log, httpapi.NotFound("Project not found"))
			return
		}
		h.log.Error("project.get.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}
	httpapi.WriteData(w, http.StatusOK, projectDetailPayload{Project: toProjectDetailResponse(p, m.Role)})
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}
	projectID := r.PathValue("projectID")

	m, err := MemberOf(r.Context(), h.projects, projectID, claims.UserID)
	if err != nil {
		httpapi.WriteErr(w, h.log, err)
		return
	}
	if m.Role != project.RoleOwner {
		httpapi.WriteErr(w, h.log, httpapi.Forbidden("Only owners can edit project"))
		return
	}

	var req patchProjectRequest
	if err := httpapi.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		httpapi.WriteErr(w, h.log, httpapi.BadRequest("INVALID_JSON", "Invalid request body"))
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		httpapi.WriteErr(w, h.log, apiErr)
		return
	}

	up := project.Update{Now: time.Now().UTC()}
	if req.Name.Set {
		name := strings.TrimSpace(req.Name.Value)
		up.Name = &name
	}
	if req.Description.Set {
		up.DescriptionSet = true
		up.Description = req.Description.Get()
	}

	p, err := h.projects.Update(r.Context(), projectID, up)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			httpapi.WriteErr(w, h.log, httpapi.NotFound("Project not found"))
			return
		}
		h.log.Error("project.update.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	httpapi.WriteData(w, http.StatusOK, singleProjectResponse{Project: toProjectResponse(p)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}
	projectID := r.PathValue("projectID")

	m, err := MemberOf(r.Context(), h.projects, projectID, claims.UserID)
	if err != nil {
		httpapi.WriteErr(w, h.log, err)
		return
	}
	if m.Role != project.RoleOwner {
		httpapi.WriteErr(w, h.log, httpapi.Forbidden("Only owners can delete project"))
		return
	}

	// Tasks go first so the in-memory mode cannot leak orphans; Postgres
	// would cascade anyway.
	if err := h.tasks.DeleteByProject(r.Context(), projectID); err != nil {
		h.log.Error("project.delete.tasks.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}
	if err := h.projects.Delete(r.Context(), projectID); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			httpapi.WriteErr(w, h.log, httpapi.NotFound("Project not found"))
			return
		}
		h.log.Error("project.delete.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	h.log.Info("project.delete.ok", "project_id", projectID, "user_id", claims.UserID)
	httpapi.WriteData(w, http.StatusOK, messageResponse{Message: "Deleted"})
}
