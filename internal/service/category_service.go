package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/phrazzld/tasker-api/internal/store"
)

// CategoryService manages the categories of a single owner per call.
// Categories owned by someone else behave exactly like missing ones.
type CategoryService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Category, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Category, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Category, error)
	Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (*domain.Category, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type categoryService struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService backed by categories.
func NewCategoryService(categories store.CategoryStore, logger *slog.Logger) CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryService{
		categories: categories,
		logger:     logger.With("component", "category_service"),
	}
}

// wrap passes expected conditions through and tags everything else.
func (s *categoryService) wrap(ctx context.Context, op string, err error) error {
	if store.IsNotFoundError(err) || isValidation(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("category operation failed",
		"operation", op,
		"error", redact.Error(err))
	return NewServiceError("category", op, err)
}

func (s *categoryService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Category, error) {
	category, err := domain.NewCategory(ownerID, name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, s.wrap(ctx, "create", err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Category, error) {
	categories, err := s.categories.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, s.wrap(ctx, "list", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, s.wrap(ctx, "get", err)
	}
	return category, nil
}

func (s *categoryService) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, s.wrap(ctx, "rename", err)
	}
	if err := category.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, s.wrap(ctx, "rename", err)
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id, ownerID); err != nil {
		return s.wrap(ctx, "delete", err)
	}
	return nil
}
