package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasker-api/internal/api"
	"github.com/phrazzld/tasker-api/internal/api/middleware"
	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// testAPI is the full HTTP surface over an in-memory database with real
// JWTs, mounted the same way the server mounts it.
type testAPI struct {
	router http.Handler
	db     *mocks.Memory
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := mocks.NewMemory()
	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "api-test-secret-that-is-long-enough!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 60 * 24,
	})
	require.NoError(t, err)

	authService, err := service.NewAuthService(db.Users(), db.Revocations(), tokens,
		&mocks.MockPasswordHasher{}, time.Hour, discardLogger)
	require.NoError(t, err)

	authHandler := api.NewAuthHandler(authService, api.CookieOptions{MaxAge: time.Hour}, discardLogger)
	categoryHandler := api.NewCategoryHandler(service.NewCategoryService(db.Categories(), discardLogger), discardLogger)
	taskHandler := api.NewTaskHandler(
		service.NewTaskService(db.Tasks(), db.Categories(), discardLogger), discardLogger)
	authMiddleware := middleware.NewAuthMiddleware(tokens, db.Revocations(), discardLogger)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/refresh", authHandler.Refresh)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/auth/logout", authHandler.Logout)

		r.Get("/categories", categoryHandler.ListCategories)
		r.Post("/categories", categoryHandler.CreateCategory)
		r.Get("/categories/{id}", categoryHandler.GetCategory)
		r.Put("/categories/{id}", categoryHandler.UpdateCategory)
		r.Delete("/categories/{id}", categoryHandler.DeleteCategory)

		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	return &testAPI{router: r, db: db}
}

// do sends a request. A string body is sent verbatim; anything else is
// JSON-encoded.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signup registers username and returns its access and refresh tokens.
func (a *testAPI) signup(t *testing.T, username string) api.AuthResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"phone":    phoneFor(username),
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[api.AuthResponse](t, w)
}

func (a *testAPI) createCategory(t *testing.T, token, name string) api.CategoryResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/categories", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[api.CategoryEnvelope](t, w).Category
}

func (a *testAPI) createTask(t *testing.T, token string, body map[string]any) api.TaskResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/tasks", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[api.TaskEnvelope](t, w).Task
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// assertError checks the status, kind and message of an error envelope.
func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, kind, message string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decode[shared.ErrorResponse](t, w)
	assert.Equal(t, kind, body.Error)
	if message != "" {
		assert.Equal(t, message, body.Message)
	}
	assert.NotEmpty(t, body.TraceID)
}

func phoneFor(username string) string {
	sum := 0
	for _, c := range username {
		sum = sum*31 + int(c)
	}
	if sum < 0 {
		sum = -sum
	}
	return fmt.Sprintf("555%07d", sum%10000000)
}
