package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// CategoryStore defines the interface for category persistence. Every read
// and mutation is scoped to an owner.
type CategoryStore interface {
	// Create saves a new category.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category owned by ownerID.
	// Returns ErrCategoryNotFound if it does not exist or belongs to someone else.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Category, error)

	// ListByUser returns all categories of ownerID ordered by creation time.
	ListByUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Category, error)

	// Update persists the name of a category owned by category.UserID.
	// Returns ErrCategoryNotFound if no owned row matched.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category owned by ownerID. Tasks referencing it keep
	// existing with no category.
	// Returns ErrCategoryNotFound if no owned row matched.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
