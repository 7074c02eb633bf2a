package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks?status=&category=&page=&limit=.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	query, err := parseTaskQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{})
		return
	}

	page, err := h.tasks.List(r.Context(), userID, query)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{Internal: "Error fetching tasks"})
		return
	}

	resp := TaskListResponse{
		Tasks:       make([]TaskResponse, 0, len(page.Tasks)),
		TotalTasks:  page.TotalTasks,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
	}
	for _, t := range page.Tasks {
		resp.Tasks = append(resp.Tasks, taskToResponse(t))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func parseTaskQuery(r *http.Request) (service.TaskQuery, error) {
	values := r.URL.Query()
	var (
		q   service.TaskQuery
		err error
	)

	if status := values.Get("status"); status != "" {
		q.Status = &status
	}
	if q.CategoryID, err = parseUUIDParam(values.Get("category"), "category"); err != nil {
		return q, err
	}
	if q.Page, err = parsePositiveIntParam(values.Get("page"), service.ErrInvalidPage); err != nil {
		return q, err
	}
	if q.Limit, err = parsePositiveIntParam(values.Get("limit"), service.ErrInvalidLimit); err != nil {
		return q, err
	}
	return q, nil
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	categoryID, err := parseUUIDParam(req.Category, "category")
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{})
		return
	}

	in := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		CategoryID:  categoryID,
	}
	if req.DueDate != nil {
		due := req.DueDate.Time
		in.DueDate = &due
	}

	task, err := h.tasks.Create(r.Context(), userID, in)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{Internal: "Error creating task"})
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, TaskEnvelope{
		Message: "Task created successfully",
		Task:    taskToResponse(task),
	})
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, id, ok := handleUserIDAndPathUUID(w, r, log)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), userID, id)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{NotFound: "Task not found", Internal: "Error fetching task"})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{Task: taskToResponse(task)})
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, id, ok := handleUserIDAndPathUUID(w, r, log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{})
		return
	}

	task, err := h.tasks.Update(r.Context(), userID, id, patch)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{
			NotFound: "Task not found or not authorized to update",
			Internal: "Error updating task",
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Message: "Task updated successfully",
		Task:    taskToResponse(task),
	})
}

// toPatch converts explicit-presence fields into a domain.TaskPatch. A null
// title becomes an empty one so that validation rejects it.
func (req UpdateTaskRequest) toPatch() (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	if req.Title.Set {
		patch.Title = &req.Title.Value
	}
	if req.Description.Set {
		patch.Description = &req.Description.Value
	}
	if req.Status.Set {
		patch.Status = &req.Status.Value
	}
	if req.DueDate.Set {
		patch.SetDueDate = true
		if !req.DueDate.Null {
			due := req.DueDate.Value.Time
			patch.DueDate = &due
		}
	}
	if req.Category.Set {
		patch.SetCategory = true
		categoryID, err := parseUUIDParam(req.Category.Value, "category")
		if err != nil {
			return patch, err
		}
		patch.CategoryID = categoryID
	}

	return patch, nil
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, id, ok := handleUserIDAndPathUUID(w, r, log)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, ErrorMessages{NotFound: "Task not found", Internal: "Error deleting task"})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}
