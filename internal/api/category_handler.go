package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categories service.CategoryService
	logger     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CategoryHandler")
	}
	return &CategoryHandler{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_handler")),
	}
}

// CreateCategory handles POST /categories.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.categories.Create(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{Internal: "Error creating category"})
		return
	}

	log.Debug("category created", slog.String("category_id", category.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, CategoryEnvelope{
		Message:  "Category created successfully",
		Category: categoryToResponse(category),
	})
}

// ListCategories handles GET /categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	categories, err := h.categories.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{Internal: "Error fetching categories"})
		return
	}

	resp := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, categoryToResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetCategory handles GET /categories/{id}.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, id, ok := handleUserIDAndPathUUID(w, r, log)
	if !ok {
		return
	}

	category, err := h.categories.Get(r.Context(), userID, id)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{
			NotFound: "Category not found",
			Internal: "Error fetching category",
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CategoryEnvelope{Category: categoryToResponse(category)})
}

// UpdateCategory handles PUT /categories/{id}.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, id, ok := handleUserIDAndPathUUID(w, r, log)
	if !ok {
		return
	}

	var req CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.categories.Rename(r.Context(), userID, id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{
			NotFound: "Category not found or not authorized to update",
			Internal: "Error updating category",
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CategoryEnvelope{
		Message:  "Category updated successfully",
		Category: categoryToResponse(category),
	})
}

// DeleteCategory handles DELETE /categories/{id}. Tasks in the category are
// kept and lose their category.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, id, ok := handleUserIDAndPathUUID(w, r, log)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, ErrorMessages{
			NotFound: "Category not found or not authorized to delete",
			Internal: "Error deleting category",
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
