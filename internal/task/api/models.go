package taskapi

import (
	"strings"
	"time"

	"taskflow/internal/httpapi"
	"taskflow/internal/task"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}

type patchTaskRequest struct {
	Title       httpapi.Optional[string] `json:"title"`
	Description httpapi.Optional[string] `json:"description"`
	Status      httpapi.Optional[string] `json:"status"`
	DueDate     httpapi.Optional[string] `json:"dueDate"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskResponse(t task.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type singleTaskResponse struct {
	Task taskResponse `json:"task"`
}

type taskListResponse struct {
	Tasks []taskResponse `json:"tasks"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toTaskResponses(ts []task.Task) []taskResponse {
	out := make([]taskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func validTaskTitle(s string) bool {
	n := len(strings.TrimSpace(s))
	return n >= 2 && n <= 200
}

func parseDueDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	return t, err == nil
}

// validate parses the request into store inputs, collecting field errors.
func (req createTaskRequest) validate() (task.CreateInput, *httpapi.Error) {
	details := map[string]string{}
	var in task.CreateInput

	if !validTaskTitle(req.Title) {
		details["title"] = "must be between 2 and 200 characters"
	} else {
		in.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != nil && len(*req.Description) > 5000 {
		details["description"] = "must be at most 5000 characters"
	} else {
		in.Description = req.Description
	}
	if req.Status != nil {
		st := task.Status(*req.Status)
		if !st.Valid() {
			details["status"] = "must be one of TODO, IN_PROGRESS, DONE"
		} else {
			in.Status = st
		}
	}
	if req.DueDate != nil {
		t, ok := parseDueDate(*req.DueDate)
		if !ok {
			details["dueDate"] = "must be an RFC 3339 timestamp"
		} else {
			in.DueDate = &t
		}
	}

	if len(details) > 0 {
		return task.CreateInput{}, httpapi.Validation(details)
	}
	return in, nil
}

func (req patchTaskRequest) validate() (task.Update, *httpapi.Error) {
	details := map[string]string{}
	var up task.Update

	if req.Title.Set {
		if req.Title.Null || !validTaskTitle(req.Title.Value) {
			details["title"] = "must be between 2 and 200 characters"
		} else {
			title := strings.TrimSpace(req.Title.Value)
			up.Title = &title
		}
	}
	if req.Description.Set {
		if !req.Description.Null && len(req.Description.Value) > 5000 {
			details["description"] = "must be at most 5000 characters"
		} else {
			up.DescriptionSet = true
			up.Description = req.Description.Get()
		}
	}
	if req.Status.Set {
		st := task.Status(req.Status.Value)
		if req.Status.Null || !st.Valid() {
			details["status"] = "must be one of TODO, IN_PROGRESS, DONE"
		} else {
			up.Status = &st
		}
	}
	if req.DueDate.Set {
		if req.DueDate.Null {
			up.DueDateSet = true
		} else if t, ok := parseDueDate(req.DueDate.Value); ok {
			up.DueDateSet = true
			up.DueDate = &t
		} else {
			details["dueDate"] = "must be an RFC 3339 timestamp"
		}
	}

	if len(details) > 0 {
		return task.Update{}, httpapi.Validation(details)
	}
	return up, nil
}
