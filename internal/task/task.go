package task

import "time"

// Status is the kanban column a task sits in. Closed set; board ordering
// follows the workflow order, not the lexical one.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// rank orders statuses by workflow position (TODO first).
func (s Status) rank() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	}
	return 3
}

// Task belongs to exactly one project.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description *string
	Status      Status
	DueDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
