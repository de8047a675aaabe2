package task

import "errors"

// ErrNotFound is returned when a task id has no match.
var ErrNotFound = errors.New("task not found")
