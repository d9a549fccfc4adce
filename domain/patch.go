package domain

// TaskPatch is a partial update. Nil fields leave the existing value
// untouched; a present field fully replaces the prior value.
type TaskPatch struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *Status       `json:"status"`
	Priority    *Priority     `json:"priority"`
	Category    *Category     `json:"category"`
	Attachments *[]Attachment `json:"attachments"`
}

// Apply merges the patch over t. The id and creation timestamp are never
// patched.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Attachments != nil {
		t.Attachments = *p.Attachments
	}
}
