package mocks

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
)

// Memory holds users, categories, tasks and revoked token IDs behind a
// single mutex. Rows are kept in insertion order, which stands in for the
// created_at ordering of the SQL stores.
type Memory struct {
	mu         sync.Mutex
	users      []*domain.User
	categories []*domain.Category
	tasks      []*domain.Task
	revoked    map[string]revokedToken

	// Err, when set, is returned by every store operation.
	Err error
}

type revokedToken struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// NewMemory returns an empty in-memory database.
func NewMemory() *Memory {
	return &Memory{revoked: make(map[string]revokedToken)}
}

// Users returns a store.UserStore view of m.
func (m *Memory) Users() store.UserStore { return memoryUsers{m} }

// Categories returns a store.CategoryStore view of m.
func (m *Memory) Categories() store.CategoryStore { return memoryCategories{m} }

// Tasks returns a store.TaskStore view of m.
func (m *Memory) Tasks() store.TaskStore { return memoryTasks{m} }

// Revocations returns a store.RevocationStore view of m.
func (m *Memory) Revocations() store.RevocationStore { return memoryRevocations{m} }

// TaskCount reports how many tasks exist across all users.
func (m *Memory) TaskCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// RevokedCount reports how many token IDs are on the revocation list.
func (m *Memory) RevokedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.revoked)
}

func (m *Memory) userExists(id uuid.UUID) bool {
	return slices.ContainsFunc(m.users, func(u *domain.User) bool { return u.ID == id })
}

func (m *Memory) findCategory(id uuid.UUID) *domain.Category {
	for _, c := range m.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

type memoryUsers struct{ m *Memory }

func (s memoryUsers) Create(_ context.Context, user *domain.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return s.m.Err
	}
	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}
	if err := user.Validate(); err != nil {
		return err
	}
	for _, u := range s.m.users {
		if u.Username == user.Username || u.Email == user.Email || u.Phone == user.Phone {
			return store.ErrUserExists
		}
	}
	stored := *user
	stored.Password = ""
	s.m.users = append(s.m.users, &stored)
	user.Password = ""
	return nil
}

func (s memoryUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return nil, s.m.Err
	}
	for _, u := range s.m.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.ID == id })
}

func (s memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.Username == username })
}

func (s memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	return s.find(func(u *domain.User) bool { return u.Email == email })
}

func (s memoryUsers) ExistsByIdentity(_ context.Context, username, email, phone string) (bool, error) {
	email = domain.NormalizeEmail(email)
	_, err := s.find(func(u *domain.User) bool {
		return u.Username == username || u.Email == email || u.Phone == phone
	})
	if err == store.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

type memoryCategories struct{ m *Memory }

func (s memoryCategories) Create(_ context.Context, category *domain.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return s.m.Err
	}
	if err := category.Validate(); err != nil {
		return err
	}
	if !s.m.userExists(category.UserID) {
		return store.ErrInvalidEntity
	}
	stored := *category
	s.m.categories = append(s.m.categories, &stored)
	return nil
}

func (s memoryCategories) GetByID(_ context.Context, id, ownerID uuid.UUID) (*domain.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return nil, s.m.Err
	}
	c := s.m.findCategory(id)
	if c == nil || c.UserID != ownerID {
		return nil, store.ErrCategoryNotFound
	}
	found := *c
	return &found, nil
}

func (s memoryCategories) ListByUser(_ context.Context, ownerID uuid.UUID) ([]*domain.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return nil, s.m.Err
	}
	result := make([]*domain.Category, 0)
	for _, c := range s.m.categories {
		if c.UserID == ownerID {
			found := *c
			result = append(result, &found)
		}
	}
	return result, nil
}

func (s memoryCategories) Update(_ context.Context, category *domain.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return s.m.Err
	}
	if err := category.Validate(); err != nil {
		return err
	}
	c := s.m.findCategory(category.ID)
	if c == nil || c.UserID != category.UserID {
		return store.ErrCategoryNotFound
	}
	c.Name = category.Name
	c.UpdatedAt = category.UpdatedAt
	return nil
}

func (s memoryCategories) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return s.m.Err
	}
	idx := slices.IndexFunc(s.m.categories, func(c *domain.Category) bool {
		return c.ID == id && c.UserID == ownerID
	})
	if idx < 0 {
		return store.ErrCategoryNotFound
	}
	s.m.categories = slices.Delete(s.m.categories, idx, idx+1)
	// ON DELETE SET NULL
	for _, t := range s.m.tasks {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	return nil
}

type memoryTasks struct{ m *Memory }

func (s memoryTasks) checkCategory(task *domain.Task) error {
	if task.CategoryID == nil {
		return nil
	}
	if s.m.findCategory(*task.CategoryID) == nil {
		return store.ErrInvalidEntity
	}
	return nil
}

func (s memoryTasks) Create(_ context.Context, task *domain.Task) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return s.m.Err
	}
	if err := task.Validate(); err != nil {
		return err
	}
	if !s.m.userExists(task.UserID) {
		return store.ErrInvalidEntity
	}
	if err := s.checkCategory(task); err != nil {
		return err
	}
	s.m.tasks = append(s.m.tasks, cloneTask(task))
	return nil
}

// read copies t and fills CategoryName the way the SQL join does.
func (s memoryTasks) read(t *domain.Task) *domain.Task {
	found := cloneTask(t)
	found.CategoryName = ""
	if t.CategoryID != nil {
		if c := s.m.findCategory(*t.CategoryID); c != nil {
			found.CategoryName = c.Name
		}
	}
	return found
}

func (s memoryTasks) GetByID(_ context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return nil, s.m.Err
	}
	for _, t := range s.m.tasks {
		if t.ID == id && t.UserID == ownerID {
			return s.read(t), nil
		}
	}
	return nil, store.ErrTaskNotFound
}

func (s memoryTasks) List(_ context.Context, filter store.TaskFilter) ([]*domain.Task, int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return nil, 0, s.m.Err
	}
	var matched []*domain.Task
	for _, t := range s.m.tasks {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *filter.CategoryID) {
			continue
		}
		matched = append(matched, t)
	}

	total := len(matched)
	page := make([]*domain.Task, 0)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	for _, t := range matched[start:end] {
		page = append(page, s.read(t))
	}
	return page, total, nil
}

func (s memoryTasks) Update(_ context.Context, task *domain.Task) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return s.m.Err
	}
	if err := task.Validate(); err != nil {
		return err
	}
	idx := slices.IndexFunc(s.m.tasks, func(t *domain.Task) bool {
		return t.ID == task.ID && t.UserID == task.UserID
	})
	if idx < 0 {
		return store.ErrTaskNotFound
	}
	if err := s.checkCategory(task); err != nil {
		return err
	}
	updated := cloneTask(task)
	updated.CreatedAt = s.m.tasks[idx].CreatedAt
	s.m.tasks[idx] = updated
	return nil
}

func (s memoryTasks) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return s.m.Err
	}
	idx := slices.IndexFunc(s.m.tasks, func(t *domain.Task) bool {
		return t.ID == id && t.UserID == ownerID
	})
	if idx < 0 {
		return store.ErrTaskNotFound
	}
	s.m.tasks = slices.Delete(s.m.tasks, idx, idx+1)
	return nil
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	if t.CategoryID != nil {
		id := *t.CategoryID
		c.CategoryID = &id
	}
	return &c
}

type memoryRevocations struct{ m *Memory }

func (s memoryRevocations) Revoke(
	_ context.Context,
	tokenID string,
	userID uuid.UUID,
	expiresAt time.Time,
) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return false, s.m.Err
	}
	if _, ok := s.m.revoked[tokenID]; ok {
		return false, nil
	}
	s.m.revoked[tokenID] = revokedToken{userID: userID, expiresAt: expiresAt}
	return true, nil
}

func (s memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return false, s.m.Err
	}
	_, ok := s.m.revoked[tokenID]
	return ok, nil
}

func (s memoryRevocations) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Err != nil {
		return 0, s.m.Err
	}
	var purged int64
	for id, r := range s.m.revoked {
		if r.expiresAt.Before(now) {
			delete(s.m.revoked, id)
			purged++
		}
	}
	return purged, nil
}
