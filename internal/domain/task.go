package domain

import (
	"fmt"
	"strings"
	"time"
)

// Field length limits for Task.
const (
	MaxTitleLen       = 255
	MaxDescriptionLen = 2000
)

// Task represents a single to-do item owned by exactly one user. The owner
// is set at creation from the authenticated caller and never reassigned.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks business rules for the Task entity.
// Returns a *ValidationError (wrapping ErrValidation) with per-field details,
// or nil if all rules pass.
func (t *Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = msgRequired
	} else if len(t.Title) > MaxTitleLen {
		fields["title"] = fmt.Sprintf("must be at most %d characters", MaxTitleLen)
	}
	if len(t.Description) > MaxDescriptionLen {
		fields["description"] = fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)
	}
	if !t.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", t.Status)
	}
	if !t.Priority.IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", t.Priority)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// SetStatus transitions the task to the given status and maintains the
// CompletedAt invariant: CompletedAt is non-nil exactly when the status is
// StatusCompleted. The timestamp is only stamped on the transition into
// StatusCompleted; re-applying StatusCompleted keeps the original time.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	switch {
	case status == StatusCompleted && t.Status != StatusCompleted:
		completed := now
		t.CompletedAt = &completed
	case status != StatusCompleted:
		t.CompletedAt = nil
	}
	t.Status = status
}

// TaskPatch describes a partial update to a Task. Nil fields are left
// unchanged. Status and Priority are raw strings so that unknown values can
// be rejected with a field-level validation error rather than silently
// coerced.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// Validate checks that every supplied field carries an acceptable value.
func (p *TaskPatch) Validate() error {
	fields := make(map[string]string)

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			fields["title"] = msgMustNotBeEmpty
		} else if len(*p.Title) > MaxTitleLen {
			fields["title"] = fmt.Sprintf("must be at most %d characters", MaxTitleLen)
		}
	}
	if p.Description != nil && len(*p.Description) > MaxDescriptionLen {
		fields["description"] = fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)
	}
	if p.Status != nil && !TaskStatus(*p.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", *p.Status)
	}
	if p.Priority != nil && !TaskPriority(*p.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", *p.Priority)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Apply copies the supplied patch fields onto the task and refreshes
// UpdatedAt. Status changes go through SetStatus so the CompletedAt
// invariant holds. The patch must have been validated first.
func (p *TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.SetStatus(TaskStatus(*p.Status), now)
	}
	if p.Priority != nil {
		t.Priority = TaskPriority(*p.Priority)
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	t.UpdatedAt = now
}
