package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/domain"
)

func strPtr(s string) *string { return &s }

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := New()
	for i := 1; i <= 5; i++ {
		task := s.Create(domain.TaskDraft{Title: "t"})
		if task.ID != i {
			t.Fatalf("expected id %d got %d", i, task.ID)
		}
	}
}

func TestCreateFillsDefaults(t *testing.T) {
	s := New()
	before := time.Now().Add(-time.Second)
	task := s.Create(domain.TaskDraft{Title: "A"})

	if task.ID != 1 {
		t.Fatalf("expected id 1 got %d", task.ID)
	}
	if task.Status != domain.StatusTodo {
		t.Fatalf("expected status todo got %q", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected priority medium got %q", task.Priority)
	}
	if task.Category != domain.CategoryFeature {
		t.Fatalf("expected category feature got %q", task.Category)
	}
	if task.Description != "" {
		t.Fatalf("expected empty description got %q", task.Description)
	}
	if task.Attachments == nil || len(task.Attachments) != 0 {
		t.Fatalf("expected empty attachments got %v", task.Attachments)
	}
	if task.CreatedAt.Before(before) {
		t.Fatalf("createdAt not stamped: %v", task.CreatedAt)
	}

	got := s.ListAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 task got %d", len(got))
	}
}

func TestCreateKeepsProvidedFields(t *testing.T) {
	s := New()
	task := s.Create(domain.TaskDraft{
		Title:       "fix login",
		Description: "stack trace attached",
		Status:      domain.StatusInProgress,
		Priority:    domain.PriorityHigh,
		Category:    domain.CategoryBug,
		Attachments: []domain.Attachment{{Filename: "trace.png", Path: "/uploads/trace.png", Size: 42}},
	})
	if task.Status != domain.StatusInProgress || task.Priority != domain.PriorityHigh || task.Category != domain.CategoryBug {
		t.Fatalf("provided fields overwritten: %+v", task)
	}
	if len(task.Attachments) != 1 || task.Attachments[0].Filename != "trace.png" {
		t.Fatalf("attachments not kept: %+v", task.Attachments)
	}
}

func TestListAllInsertionOrderAndIdempotent(t *testing.T) {
	s := New()
	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		s.Create(domain.TaskDraft{Title: title})
	}
	a := s.ListAll()
	b := s.ListAll()
	if len(a) != len(titles) || len(b) != len(titles) {
		t.Fatalf("expected %d tasks got %d and %d", len(titles), len(a), len(b))
	}
	for i, title := range titles {
		if a[i].Title != title {
			t.Fatalf("expected %q at %d got %q", title, i, a[i].Title)
		}
		if a[i].ID != b[i].ID || a[i].Title != b[i].Title {
			t.Fatalf("ListAll not idempotent at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	s := New()
	s.Create(domain.TaskDraft{Title: "A", Description: "keep me"})

	merged, err := s.Update(1, domain.TaskPatch{Title: strPtr("B")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if merged.Title != "B" {
		t.Fatalf("expected title B got %q", merged.Title)
	}
	if merged.Description != "keep me" {
		t.Fatalf("omitted field touched: %q", merged.Description)
	}

	// A present empty string replaces, it is not "omitted".
	merged, err = s.Update(1, domain.TaskPatch{Description: strPtr("")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if merged.Description != "" {
		t.Fatalf("expected cleared description got %q", merged.Description)
	}
}

func TestUpdateNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := New()
	if _, err := s.Update(99, domain.TaskPatch{Title: strPtr("X")}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound got %v", err)
	}
	if got := s.ListAll(); len(got) != 0 {
		t.Fatalf("expected empty store got %d tasks", len(got))
	}
}

func TestMoveChangesOnlyStatus(t *testing.T) {
	s := New()
	s.Create(domain.TaskDraft{Title: "A"})
	s.Create(domain.TaskDraft{Title: "B"})

	if err := s.Move(1, domain.StatusDone); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	got := s.ListAll()
	if got[0].Status != domain.StatusDone {
		t.Fatalf("expected task 1 done got %q", got[0].Status)
	}
	if got[0].Title != "A" || got[0].Priority != domain.PriorityMedium {
		t.Fatalf("move touched other fields: %+v", got[0])
	}
	if got[1].Status != domain.StatusTodo {
		t.Fatalf("task 2 changed: %+v", got[1])
	}
}

func TestMoveNotFound(t *testing.T) {
	s := New()
	if err := s.Move(7, domain.StatusDone); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound got %v", err)
	}
}

func TestDeleteDoesNotReuseIDs(t *testing.T) {
	s := New()
	s.Create(domain.TaskDraft{Title: "A"})
	s.Create(domain.TaskDraft{Title: "B"})
	if err := s.Delete(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	task := s.Create(domain.TaskDraft{Title: "C"})
	if task.ID != 3 {
		t.Fatalf("expected id 3 after delete got %d", task.ID)
	}
	got := s.ListAll()
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks got %d", len(got))
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	s := New()
	for _, title := range []string{"a", "b", "c", "d"} {
		s.Create(domain.TaskDraft{Title: title})
	}
	if err := s.Delete(2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got := s.ListAll()
	want := []string{"a", "c", "d"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("expected %q at %d got %q", title, i, got[i].Title)
		}
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := New()
	s.Create(domain.TaskDraft{Title: "A"})
	if err := s.Delete(99); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound got %v", err)
	}
	if got := s.ListAll(); len(got) != 1 {
		t.Fatalf("store changed on failed delete: %d tasks", len(got))
	}
}

func TestResetClearsCounter(t *testing.T) {
	s := New()
	s.Create(domain.TaskDraft{Title: "A"})
	s.Create(domain.TaskDraft{Title: "B"})
	s.Reset()
	if got := s.ListAll(); len(got) != 0 {
		t.Fatalf("expected empty store got %d tasks", len(got))
	}
	task := s.Create(domain.TaskDraft{Title: "fresh"})
	if task.ID != 1 {
		t.Fatalf("expected id 1 after reset got %d", task.ID)
	}
}

// Folding a fixed intent sequence over an empty store must yield the same
// collection every run, regardless of which connection the intents came from.
func TestConvergenceUnderIntentFold(t *testing.T) {
	s := New()
	s.Create(domain.TaskDraft{Title: "one"})
	s.Create(domain.TaskDraft{Title: "two"})
	if _, err := s.Update(2, domain.TaskPatch{Priority: priorityPtr(domain.PriorityHigh)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Move(1, domain.StatusInProgress); err != nil {
		t.Fatalf("move: %v", err)
	}
	s.Create(domain.TaskDraft{Title: "three"})
	if err := s.Delete(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Failed intent must not disturb the fold.
	if err := s.Move(2, domain.StatusDone); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound got %v", err)
	}

	got := s.ListAll()
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks got %d", len(got))
	}
	if got[0].ID != 1 || got[0].Title != "one" || got[0].Status != domain.StatusInProgress {
		t.Fatalf("unexpected task 1: %+v", got[0])
	}
	if got[1].ID != 3 || got[1].Title != "three" || got[1].Status != domain.StatusTodo {
		t.Fatalf("unexpected task 3: %+v", got[1])
	}
}

func priorityPtr(p domain.Priority) *domain.Priority { return &p }
