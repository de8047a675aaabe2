package taskapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	authapi "taskflow/internal/auth/api"
	"taskflow/internal/httpapi"
	"taskflow/internal/project"
	projectapi "taskflow/internal/project/api"
	"taskflow/internal/task"
)

// Handler serves the task resource. Tasks are reached either through
// their project (list, create) or directly by id (patch, delete); the
// direct routes resolve the task first, then check membership in its
// project.
type Handler struct {
	log          *slog.Logger
	maxBodyBytes int64
	projects     project.Store
	tasks        task.Store
}

// NewHandler constructs a task Handler.
func NewHandler(log *slog.Logger, maxBodyBytes int64, projects project.Store, tasks task.Store) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if projects == nil || tasks == nil {
		return nil, errors.New("taskapi: nil store")
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handler{log: log, maxBodyBytes: maxBodyBytes, projects: projects, tasks: tasks}, nil
}

// Register wires task routes onto the mux, all behind the gate.
func (h *Handler) Register(mux *http.ServeMux, gate *authapi.Gate) {
	mux.Handle("GET /projects/{projectID}/tasks", gate.Require(http.HandlerFunc(h.handleList)))
	mux.Handle("POST /projects/{projectID}/tasks", gate.Require(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PATCH /tasks/{taskID}", gate.Require(http.HandlerFunc(h.handlePatch)))
	mux.Handle("DELETE /tasks/{taskID}", gate.Require(http.HandlerFunc(h.handleDelete)))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}
	projectID := r.PathValue("projectID")

	if _, err := projectapi.MemberOf(r.Context(), h.projects, projectID, claims.UserID); err != nil {
		httpapi.WriteErr(w, h.log, err)
		return
	}

	ts, err := h.tasks.ListByProject(r.Context(), projectID)
	if err != nil {
		h.log.Error("task.list.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}
	httpapi.WriteData(w, http.StatusOK, taskListResponse{Tasks: toTaskResponses(ts)})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}
	projectID := r.PathValue("projectID")

	if _, err := projectapi.MemberOf(r.Context(), h.projects, projectID, claims.UserID); err != nil {
		httpapi.WriteErr(w, h.log, err)
		return
	}

	var req createTaskRequest
	if err := httpapi.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		httpapi.WriteErr(w, h.log, httpapi.BadRequest("INVALID_JSON", "Invalid request body"))
		return
	}
	in, apiErr := req.validate()
	if apiErr != nil {
		httpapi.WriteErr(w, h.log, apiErr)
		return
	}
	in.ProjectID = projectID
	in.Now = time.Now().UTC()

	t, err := h.tasks.Create(r.Context(), in)
	if err != nil {
		h.log.Error("task.create.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	h.log.Info("task.create.ok", "task_id", t.ID, "project_id", projectID)
	httpapi.WriteData(w, http.StatusOK, singleTaskResponse{Task: toTaskResponse(t)})
}

// resolveForWrite loads the task and checks the caller's membership in
// its project. A missing task is a 404 before any membership question
// arises.
func (h *Handler) resolveForWrite(r *http.Request, taskID, userID string) (task.Task, error) {
	t, err := h.tasks.GetByID(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return task.Task{}, httpapi.NotFound("Task not found")
		}
		return task.Task{}, err
	}

	if _, err := projectapi.MemberOf(r.Context(), h.projects, t.ProjectID, userID); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}
	taskID := r.PathValue("taskID")

	if _, err := h.resolveForWrite(r, taskID, claims.UserID); err != nil {
		httpapi.WriteErr(w, h.log, err)
		return
	}

	var req patchTaskRequest
	if err := httpapi.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		httpapi.WriteErr(w, h.log, httpapi.BadRequest("INVALID_JSON", "Invalid request body"))
		return
	}
	up, apiErr := req.validate()
	if apiErr != nil {
		httpapi.WriteErr(w, h.log, apiErr)
		return
	}
	up.Now = time.Now().UTC()

	t, err := h.tasks.Update(r.Context(), taskID, up)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			httpapi.WriteErr(w, h.log, httpapi.NotFound("Task not found"))
			return
		}
		h.log.Error("task.update.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	httpapi.WriteData(w, http.StatusOK, singleTaskResponse{Task: toTaskResponse(t)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.IdentityFromContext(r.Context())
	if !ok {
		httpapi.WriteErr(w, h.log, httpapi.Unauthorized())
		return
	}
	taskID := r.PathValue("taskID")

	if _, err := h.resolveForWrite(r, taskID, claims.UserID); err != nil {
		httpapi.WriteErr(w, h.log, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), taskID); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			httpapi.WriteErr(w, h.log, httpapi.NotFound("Task not found"))
			return
		}
		h.log.Error("task.delete.fail", "err", err)
		httpapi.WriteErr(w, h.log, err)
		return
	}

	h.log.Info("task.delete.ok", "task_id", taskID, "user_id", claims.UserID)
	httpapi.WriteData(w, http.StatusOK, messageResponse{Message: "Deleted"})
}
