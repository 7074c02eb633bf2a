package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/api"
	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	token := a.signup(t, "alice").AccessToken
	category := a.createCategory(t, token, "Work")

	t.Run("defaults", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/tasks", token, map[string]any{"title": "Buy milk"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		env := decode[api.TaskEnvelope](t, w)
		assert.Equal(t, "Task created successfully", env.Message)
		assert.Equal(t, "Buy milk", env.Task.Title)
		assert.Equal(t, "pending", env.Task.Status)
		assert.Nil(t, env.Task.DueDate)
		assert.Nil(t, env.Task.Category)
		assert.Contains(t, w.Body.String(), `"category":null`)
	})

	t.Run("all fields", func(t *testing.T) {
		task := a.createTask(t, token, map[string]any{
			"title":       "Report",
			"description": "quarterly",
			"status":      "in progress",
			"dueDate":     "2026-05-01",
			"category":    category.ID.String(),
		})
		assert.Equal(t, "quarterly", task.Description)
		assert.Equal(t, "in progress", task.Status)
		require.NotNil(t, task.DueDate)
		assert.True(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC).Equal(*task.DueDate))
		require.NotNil(t, task.Category)
		assert.Equal(t, category.ID, task.Category.ID)
		assert.Equal(t, "Work", task.Category.Name)
	})

	t.Run("rfc3339 due date", func(t *testing.T) {
		task := a.createTask(t, token, map[string]any{"title": "Call", "dueDate": "2026-05-01T09:30:00+02:00"})
		require.NotNil(t, task.DueDate)
		assert.True(t, time.Date(2026, 5, 1, 7, 30, 0, 0, time.UTC).Equal(*task.DueDate))
	})

	t.Run("empty category means none", func(t *testing.T) {
		task := a.createTask(t, token, map[string]any{"title": "Loose", "category": ""})
		assert.Nil(t, task.Category)
	})

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{name: "missing title", body: map[string]any{"description": "x"}, message: "Task title is required"},
		{name: "bad due date", body: map[string]any{"title": "x", "dueDate": "tomorrow"}, message: "Invalid due date format"},
		{name: "bad category id", body: map[string]any{"title": "x", "category": "nope"}, message: "Invalid category ID"},
		{name: "unknown category", body: map[string]any{"title": "x", "category": uuid.NewString()}, message: "Category not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertError(t, a.do(t, http.MethodPost, "/tasks", token, tt.body),
				http.StatusBadRequest, shared.KindValidation, tt.message)
		})
	}
}

func TestCreateTaskWithForeignCategory(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	alice := a.signup(t, "alice").AccessToken
	bob := a.signup(t, "bob").AccessToken
	category := a.createCategory(t, alice, "Work")

	assertError(t, a.do(t, http.MethodPost, "/tasks", bob,
		map[string]any{"title": "Sneaky", "category": category.ID.String()}),
		http.StatusBadRequest, shared.KindValidation, "Category not found")
	assert.Zero(t, a.db.TaskCount())
}

func TestListTasksPagination(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	token := a.signup(t, "alice").AccessToken
	for i := 1; i <= 20; i++ {
		a.createTask(t, token, map[string]any{"title": fmt.Sprintf("task %d", i)})
	}

	w := a.do(t, http.MethodGet, "/tasks?page=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[api.TaskListResponse](t, w)
	assert.Equal(t, 20, page.TotalTasks)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Tasks, 8)
	assert.Equal(t, "task 9", page.Tasks[0].Title)
	assert.Equal(t, "task 16", page.Tasks[7].Title)

	w = a.do(t, http.MethodGet, "/tasks?page=3&limit=8", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[api.TaskListResponse](t, w).Tasks, 4)

	w = a.do(t, http.MethodGet, "/tasks?page=9", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	past := decode[api.TaskListResponse](t, w)
	assert.Empty(t, past.Tasks)
	assert.Equal(t, 9, past.CurrentPage)
	assert.Contains(t, w.Body.String(), `"tasks":[]`)

	w = a.do(t, http.MethodGet, "/tasks?limit=500", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[api.TaskListResponse](t, w)
	assert.Len(t, all.Tasks, 20)
	assert.Equal(t, 1, all.TotalPages)

	for _, query := range []string{"page=0", "page=abc", "limit=0", "limit=-3"} {
		assertError(t, a.do(t, http.MethodGet, "/tasks?"+query, token, nil),
			http.StatusBadRequest, shared.KindValidation, "")
	}
}

func TestListTasksFilters(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	token := a.signup(t, "alice").AccessToken
	work := a.createCategory(t, token, "Work")
	a.createTask(t, token, map[string]any{"title": "a", "status": "done", "category": work.ID.String()})
	a.createTask(t, token, map[string]any{"title": "b", "status": "done"})
	a.createTask(t, token, map[string]any{"title": "c", "category": work.ID.String()})

	other := a.signup(t, "bob").AccessToken
	a.createTask(t, other, map[string]any{"title": "not mine", "status": "done"})

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"a", "b", "c"}},
		{query: "?status=done", want: []string{"a", "b"}},
		{query: "?category=" + work.ID.String(), want: []string{"a", "c"}},
		{query: "?status=done&category=" + work.ID.String(), want: []string{"a"}},
		{query: "?status=", want: []string{"a", "b", "c"}},
		{query: "?category=" + uuid.NewString(), want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := a.do(t, http.MethodGet, "/tasks"+tt.query, token, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			page := decode[api.TaskListResponse](t, w)
			titles := make([]string, 0, len(page.Tasks))
			for _, task := range page.Tasks {
				titles = append(titles, task.Title)
			}
			assert.Equal(t, tt.want, titles)
			assert.Equal(t, len(tt.want), page.TotalTasks)
		})
	}

	assertError(t, a.do(t, http.MethodGet, "/tasks?category=nope", token, nil),
		http.StatusBadRequest, shared.KindValidation, "Invalid category ID")
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	token := a.signup(t, "alice").AccessToken
	work := a.createCategory(t, token, "Work")
	home := a.createCategory(t, token, "Home")

	newTask := func(t *testing.T) string {
		return "/tasks/" + a.createTask(t, token, map[string]any{
			"title":       "Report",
			"description": "quarterly",
			"status":      "in progress",
			"dueDate":     "2026-05-01",
			"category":    work.ID.String(),
		}).ID.String()
	}
	update := func(t *testing.T, path, body string) api.TaskResponse {
		t.Helper()
		w := a.do(t, http.MethodPut, path, token, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		env := decode[api.TaskEnvelope](t, w)
		assert.Equal(t, "Task updated successfully", env.Message)
		return env.Task
	}

	t.Run("omitted fields are unchanged", func(t *testing.T) {
		got := update(t, newTask(t), `{"status":"done"}`)
		assert.Equal(t, "done", got.Status)
		assert.Equal(t, "Report", got.Title)
		assert.Equal(t, "quarterly", got.Description)
		require.NotNil(t, got.DueDate)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Work", got.Category.Name)
	})

	t.Run("null clears", func(t *testing.T) {
		got := update(t, newTask(t), `{"description":null,"dueDate":null,"category":null}`)
		assert.Empty(t, got.Description)
		assert.Nil(t, got.DueDate)
		assert.Nil(t, got.Category)
		assert.Equal(t, "in progress", got.Status)
	})

	t.Run("move to another category", func(t *testing.T) {
		got := update(t, newTask(t), `{"category":"`+home.ID.String()+`"}`)
		require.NotNil(t, got.Category)
		assert.Equal(t, home.ID, got.Category.ID)
		assert.Equal(t, "Home", got.Category.Name)
	})

	t.Run("empty body changes nothing", func(t *testing.T) {
		got := update(t, newTask(t), `{}`)
		assert.Equal(t, "Report", got.Title)
		assert.Equal(t, "in progress", got.Status)
	})

	t.Run("persisted", func(t *testing.T) {
		path := newTask(t)
		update(t, path, `{"title":"Final report"}`)
		w := a.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Final report", decode[api.TaskEnvelope](t, w).Task.Title)
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty title", body: `{"title":"   "}`, message: "Task title is required"},
		{name: "null title", body: `{"title":null}`, message: "Task title is required"},
		{name: "bad due date", body: `{"dueDate":"someday"}`, message: "Invalid due date format"},
		{name: "unknown category", body: `{"category":"` + uuid.NewString() + `"}`, message: "Category not found"},
		{name: "wrong type", body: `{"title":42}`, message: "Invalid request format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := newTask(t)
			assertError(t, a.do(t, http.MethodPut, path, token, tt.body),
				http.StatusBadRequest, shared.KindValidation, tt.message)

			w := a.do(t, http.MethodGet, path, token, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "Report", decode[api.TaskEnvelope](t, w).Task.Title)
		})
	}
}

func TestTasksAreOwnerScoped(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	alice := a.signup(t, "alice").AccessToken
	bob := a.signup(t, "bob").AccessToken
	path := "/tasks/" + a.createTask(t, alice, map[string]any{"title": "Private"}).ID.String()

	assertError(t, a.do(t, http.MethodGet, path, bob, nil),
		http.StatusNotFound, shared.KindNotFound, "Task not found")
	assertError(t, a.do(t, http.MethodPut, path, bob, `{"title":"Mine now"}`),
		http.StatusNotFound, shared.KindNotFound, "Task not found or not authorized to update")
	assertError(t, a.do(t, http.MethodDelete, path, bob, nil),
		http.StatusNotFound, shared.KindNotFound, "Task not found")

	w := a.do(t, http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Private", decode[api.TaskEnvelope](t, w).Task.Title)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	token := a.signup(t, "alice").AccessToken
	path := "/tasks/" + a.createTask(t, token, map[string]any{"title": "Gone soon"}).ID.String()

	w := a.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task deleted successfully", decode[api.MessageResponse](t, w).Message)

	assertError(t, a.do(t, http.MethodGet, path, token, nil),
		http.StatusNotFound, shared.KindNotFound, "Task not found")
	assertError(t, a.do(t, http.MethodDelete, path, token, nil),
		http.StatusNotFound, shared.KindNotFound, "Task not found")
	assertError(t, a.do(t, http.MethodDelete, "/tasks/123", token, nil),
		http.StatusBadRequest, shared.KindValidation, "Invalid ID format")
}
