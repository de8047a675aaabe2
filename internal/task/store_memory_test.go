package task

import (
	"testing"
	"time"
)

func seedTask(t *testing.T, s *MemoryStore, projectID, title string, status Status, now time.Time) Task {
	t.Helper()
	tk, err := s.Create(t.Context(), CreateInput{
		ProjectID: projectID,
		Title:     title,
		Status:    status,
		Now:       now,
	})
	if err != nil {
		t.Fatalf("Create(%s): %v", title, err)
	}
	return tk
}

func TestMemoryStoreBoardOrder(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()

	seedTask(t, s, "p1", "shipped", StatusDone, now)
	older := seedTask(t, s, "p1", "todo old", StatusTodo, now.Add(-time.Hour))
	newer := seedTask(t, s, "p1", "todo new", StatusTodo, now)
	seedTask(t, s, "p1", "doing", StatusInProgress, now)
	seedTask(t, s, "p2", "other project", StatusTodo, now)

	got, err := s.ListByProject(t.Context(), "p1")
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	wantStatus := []Status{StatusTodo, StatusTodo, StatusInProgress, StatusDone}
	for i, w := range wantStatus {
		if got[i].Status != w {
			t.Fatalf("pos %d status = %s, want %s", i, got[i].Status, w)
		}
	}
	// Within a status, most recently updated comes first.
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("TODO order = %s, %s", got[0].Title, got[1].Title)
	}
}

func TestMemoryStoreCreateDefaultsToTodo(t *testing.T) {
	s := NewMemoryStore()
	tk := seedTask(t, s, "p1", "untouched", "", time.Now().UTC())
	if tk.Status != StatusTodo {
		t.Fatalf("status = %s, want TODO", tk.Status)
	}
}

func TestMemoryStoreTriStateUpdate(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()
	due := now.Add(48 * time.Hour)
	desc := "original"

	tk, err := s.Create(t.Context(), CreateInput{
		ProjectID:   "p1",
		Title:       "task",
		Description: &desc,
		DueDate:     &due,
		Now:         now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Untouched fields survive a partial update.
	status := StatusInProgress
	got, err := s.Update(t.Context(), tk.ID, Update{Status: &status, Now: now.Add(time.Minute)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Description == nil || *got.Description != "original" || got.DueDate == nil {
		t.Fatalf("partial update clobbered fields: %+v", got)
	}
	if got.Status != StatusInProgress {
		t.Fatalf("status = %s", got.Status)
	}

	// Explicit clears go through the Set flags.
	got, err = s.Update(t.Context(), tk.ID, Update{
		DescriptionSet: true,
		DueDateSet:     true,
		Now:            now.Add(2 * time.Minute),
	})
	if err != nil {
		t.Fatalf("Update clear: %v", err)
	}
	if got.Description != nil || got.DueDate != nil {
		t.Fatalf("clear failed: %+v", got)
	}

	if _, err := s.Update(t.Context(), "missing", Update{Now: now}); err != ErrNotFound {
		t.Fatalf("missing update err = %v", err)
	}
}

func TestMemoryStoreDeleteByProject(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()

	seedTask(t, s, "p1", "a", StatusTodo, now)
	seedTask(t, s, "p1", "b", StatusDone, now)
	keep := seedTask(t, s, "p2", "c", StatusTodo, now)

	if err := s.DeleteByProject(t.Context(), "p1"); err != nil {
		t.Fatalf("DeleteByProject: %v", err)
	}

	if got, _ := s.ListByProject(t.Context(), "p1"); len(got) != 0 {
		t.Fatalf("p1 tasks remain: %d", len(got))
	}
	if _, err := s.GetByID(t.Context(), keep.ID); err != nil {
		t.Fatalf("p2 task lost: %v", err)
	}
}
