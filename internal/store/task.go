package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// TaskFilter selects a page of one user's tasks. Nil filters match everything.
type TaskFilter struct {
	UserID     uuid.UUID
	Status     *string
	CategoryID *uuid.UUID
	Limit      int
	Offset     int
}

// TaskStore defines the interface for task persistence. Every read and
// mutation is scoped to an owner.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the owner or category does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task owned by ownerID, including its category name.
	// Returns ErrTaskNotFound if it does not exist or belongs to someone else.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// List returns the page of tasks matching filter, ordered by creation
	// time, together with the total number of matching tasks.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, int, error)

	// Update persists every mutable field of a task owned by task.UserID.
	// Returns ErrTaskNotFound if no owned row matched.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task owned by ownerID.
	// Returns ErrTaskNotFound if no owned row matched.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
