package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTaskStatus is applied when a task is created without a status.
	DefaultTaskStatus = "pending"

	MaxTaskTitleLength  = 200
	MaxTaskStatusLength = 50
)

var (
	ErrEmptyTaskID       = NewValidationError("id", "task ID cannot be empty")
	ErrEmptyTaskOwnerID  = NewValidationError("user", "task owner cannot be empty")
	ErrEmptyTaskTitle    = NewValidationError("title", "Task title is required")
	ErrTaskTitleTooLong  = NewValidationError("title", "Task title must be at most 200 characters long")
	ErrTaskStatusTooLong = NewValidationError("status", "Task status must be at most 50 characters long")
)

// Task is a unit of work owned by a user. Status is free-form text.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// CategoryName is filled by reads that join the category. It is empty
	// when CategoryID is nil.
	CategoryName string `json:"-"`
}

// NewTask creates a validated task owned by userID with the default status.
// Optional fields are set by the caller before persisting.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Status:    DefaultTaskStatus,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwnerID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}
	if len(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}
	if len(t.Status) > MaxTaskStatusLength {
		return ErrTaskStatusTooLong
	}
	return nil
}

// TaskPatch is a partial update. A nil pointer leaves the field unchanged.
// DueDate and CategoryID are nullable, so their presence is tracked by the
// Set flags: Set with a nil value clears the field.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string

	SetDueDate bool
	DueDate    *time.Time

	SetCategory bool
	CategoryID  *uuid.UUID
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && !p.SetDueDate && !p.SetCategory
}

// Apply applies the patch and validates the result. On error the task is
// left unchanged.
func (t *Task) Apply(p TaskPatch) error {
	updated := *t

	if p.Title != nil {
		updated.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		updated.Description = *p.Description
	}
	if p.Status != nil {
		updated.Status = *p.Status
	}
	if p.SetDueDate {
		updated.DueDate = p.DueDate
	}
	if p.SetCategory {
		if p.CategoryID == nil || updated.CategoryID == nil || *p.CategoryID != *updated.CategoryID {
			updated.CategoryName = ""
		}
		updated.CategoryID = p.CategoryID
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*t = updated
	return nil
}
