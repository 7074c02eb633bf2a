package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxCategoryNameLength bounds category names.
const MaxCategoryNameLength = 100

var (
	ErrEmptyCategoryID      = NewValidationError("id", "category ID cannot be empty")
	ErrEmptyCategoryName    = NewValidationError("name", "Category name is required")
	ErrCategoryNameTooLong  = NewValidationError("name", "Category name must be at most 100 characters long")
	ErrEmptyCategoryOwnerID = NewValidationError("user", "category owner cannot be empty")
)

// Category groups tasks for a single user.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a validated category owned by userID.
func NewCategory(userID uuid.UUID, name string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}
	if c.UserID == uuid.Nil {
		return ErrEmptyCategoryOwnerID
	}
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if len(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	return nil
}

// Rename changes the category name and bumps UpdatedAt. The category is left
// untouched when the new name is invalid.
func (c *Category) Rename(name string) error {
	renamed := *c
	renamed.Name = strings.TrimSpace(name)
	if err := renamed.Validate(); err != nil {
		return err
	}
	c.Name = renamed.Name
	c.UpdatedAt = time.Now().UTC()
	return nil
}
