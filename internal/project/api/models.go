package projectapi

import (
	"strings"
	"time"

	"taskflow/internal/httpapi"
	"taskflow/internal/project"
)

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type patchProjectRequest struct {
	Name        httpapi.Optional[string] `json:"name"`
	Description httpapi.Optional[string] `json:"description"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// projectDetailResponse augments the project with the caller's own role,
// so clients can decide whether to show owner-only controls.
type projectDetailResponse struct {
	projectResponse
	Role string `json:"role"`
}

// Response payloads keep the resource under a named key so clients
// unwrap "project"/"projects" uniformly across single and list routes.
type singleProjectResponse struct {
	Project projectResponse `json:"project"`
}

type projectDetailPayload struct {
	Project projectDetailResponse `json:"project"`
}

type projectListResponse struct {
	Projects []projectResponse `json:"projects"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toProjectDetailResponse(p project.Project, role project.MemberRole) projectDetailResponse {
	return projectDetailResponse{
		projectResponse: toProjectResponse(p),
		Role:            string(role),
	}
}

func toProjectResponse(p project.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectResponses(ps []project.Project) []projectResponse {
	out := make([]projectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func validProjectName(s string) bool {
	n := len(strings.TrimSpace(s))
	return n >= 2 && n <= 120
}

func (req createProjectRequest) validate() *httpapi.Error {
	details := map[string]string{}

	if !validProjectName(req.Name) {
		details["name"] = "must be between 2 and 120 characters"
	}
	if req.Description != nil && len(*req.Description) > 2000 {
		details["description"] = "must be at most 2000 characters"
	}

	if len(details) > 0 {
		return httpapi.Validation(details)
	}
	return nil
}

func (req patchProjectRequest) validate() *httpapi.Error {
	details := map[string]string{}

	if req.Name.Set {
		if req.Name.Null || !validProjectName(req.Name.Value) {
			details["name"] = "must be between 2 and 120 characters"
		}
	}
	if req.Description.Set && !req.Description.Null && len(req.Description.Value) > 2000 {
		details["description"] = "must be at most 2000 characters"
	}

	if len(details) > 0 {
		return httpapi.Validation(details)
	}
	return nil
}
