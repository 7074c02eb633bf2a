package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/phrazzld/tasker-api/internal/store"
)

// Pagination defaults for TaskService.List.
const (
	DefaultPage  = 1
	DefaultLimit = 8
	MaxLimit     = 100
)

// TaskInput carries the fields of a new task. An empty Status means
// domain.DefaultTaskStatus.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	CategoryID  *uuid.UUID
}

// TaskQuery filters and paginates TaskService.List. Nil Page and Limit take
// the defaults; a Limit above MaxLimit is clamped.
type TaskQuery struct {
	Status     *string
	CategoryID *uuid.UUID
	Page       *int
	Limit      *int
}

// TaskPage is one page of an owner's tasks.
type TaskPage struct {
	Tasks       []*domain.Task
	TotalTasks  int
	TotalPages  int
	CurrentPage int
	Limit       int
}

// TaskService manages the tasks of a single owner per call. Tasks owned by
// someone else behave exactly like missing ones, and a task may only
// reference a category of the same owner.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in TaskInput) (*domain.Task, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, q TaskQuery) (*TaskPage, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type taskService struct {
	tasks      store.TaskStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewTaskService creates a TaskService. categories is used to check that a
// referenced category belongs to the caller.
func NewTaskService(tasks store.TaskStore, categories store.CategoryStore, logger *slog.Logger) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{
		tasks:      tasks,
		categories: categories,
		logger:     logger.With("component", "task_service"),
	}
}

func (s *taskService) wrap(ctx context.Context, op string, err error) error {
	if store.IsNotFoundError(err) || isValidation(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		"operation", op,
		"error", redact.Error(err))
	return NewServiceError("task", op, err)
}

// ownedCategory returns the caller's category or ErrInvalidCategory.
func (s *taskService) ownedCategory(ctx context.Context, ownerID, categoryID uuid.UUID, op string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, categoryID, ownerID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrInvalidCategory
		}
		return nil, s.wrap(ctx, op, err)
	}
	return category, nil
}

func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, in TaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, in.Title)
	if err != nil {
		return nil, err
	}
	task.Description = in.Description
	if in.Status != "" {
		task.Status = in.Status
	}
	task.DueDate = in.DueDate
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		category, err := s.ownedCategory(ctx, ownerID, *in.CategoryID, "create")
		if err != nil {
			return nil, err
		}
		task.CategoryID = &category.ID
		task.CategoryName = category.Name
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, s.wrap(ctx, "create", err)
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, s.wrap(ctx, "get", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, ownerID uuid.UUID, q TaskQuery) (*TaskPage, error) {
	page, limit := DefaultPage, DefaultLimit
	if q.Page != nil {
		page = *q.Page
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	if page < 1 {
		return nil, ErrInvalidPage
	}
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	limit = min(limit, MaxLimit)
	if page-1 > math.MaxInt32/limit {
		return nil, ErrInvalidPage
	}

	tasks, total, err := s.tasks.List(ctx, store.TaskFilter{
		UserID:     ownerID,
		Status:     q.Status,
		CategoryID: q.CategoryID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, s.wrap(ctx, "list", err)
	}

	return &TaskPage{
		Tasks:       tasks,
		TotalTasks:  total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
		Limit:       limit,
	}, nil
}

func (s *taskService) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, s.wrap(ctx, "update", err)
	}
	if patch.IsEmpty() {
		return task, nil
	}

	var categoryName string
	if patch.SetCategory && patch.CategoryID != nil {
		category, err := s.ownedCategory(ctx, ownerID, *patch.CategoryID, "update")
		if err != nil {
			return nil, err
		}
		categoryName = category.Name
	}

	if err := task.Apply(patch); err != nil {
		return nil, err
	}
	if patch.SetCategory {
		task.CategoryName = categoryName
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, s.wrap(ctx, "update", err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id, ownerID); err != nil {
		return s.wrap(ctx, "delete", err)
	}
	return nil
}
