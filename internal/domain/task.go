package domain

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// TitleMaxLength is counted in code points, not bytes.
const TitleMaxLength = 200

type Task struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     *int64    `db:"user_id" json:"owner_id,omitempty"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Complete    bool      `db:"completed" json:"complete"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// OwnedBy reports whether the task belongs to the given user.
// Tasks without an owner belong to nobody.
func (t *Task) OwnedBy(userID int64) bool {
	return t.OwnerID != nil && *t.OwnerID == userID
}

// TaskPatch carries the user-editable fields of a task. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Complete    *bool
}

// Apply copies the set fields onto t. Owner, id and created_at are never touched.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Complete != nil {
		t.Complete = *p.Complete
	}
}

// ValidateTitle returns a ValidationError for an empty or over-long title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "This field is required.")
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return NewValidationError("title", "Ensure this value has at most 200 characters.")
	}
	return nil
}

// SortTasks orders incomplete tasks before complete ones, keeping the
// existing relative order inside each group.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return !tasks[i].Complete && tasks[j].Complete
	})
}

// HasTitlePrefix is the case-sensitive prefix match used by the task search box.
func HasTitlePrefix(t *Task, prefix string) bool {
	return strings.HasPrefix(t.Title, prefix)
}
