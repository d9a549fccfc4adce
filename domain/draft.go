package domain

import "time"

// TaskDraft carries the fields a client may supply when creating a task.
// Unset optional fields are replaced with board defaults by NewTask.
type TaskDraft struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	Priority    Priority     `json:"priority"`
	Category    Category     `json:"category"`
	Attachments []Attachment `json:"attachments"`
}

// NewTask builds a Task from a draft. Defaults are applied here and nowhere
// else: status "todo", priority "medium", category "feature", no attachments.
func NewTask(id int, createdAt time.Time, d TaskDraft) Task {
	t := Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		Category:    d.Category,
		Attachments: d.Attachments,
		CreatedAt:   createdAt,
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Category == "" {
		t.Category = CategoryFeature
	}
	if t.Attachments == nil {
		t.Attachments = []Attachment{}
	}
	return t
}
