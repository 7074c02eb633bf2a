package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
)

// ErrInvalidPathID is returned when an {id} path segment is not a UUID.
var ErrInvalidPathID = domain.NewValidationError("id", "Invalid ID format")

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, paramName))
	if err != nil {
		return uuid.Nil, ErrInvalidPathID
	}
	return id, nil
}

// requireUser returns the authenticated user's ID, writing a 401 when the
// auth middleware did not run.
func requireUser(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, ErrorMessages{})
		return uuid.Nil, false
	}
	return userID, true
}

// handleUserIDAndPathUUID extracts both the user ID from context and the
// {id} path parameter. It writes an error response if either fails.
func handleUserIDAndPathUUID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := requireUser(w, r, log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, "id")
	if err != nil {
		log.Debug("invalid id path parameter", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, ErrorMessages{})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// decodeBody decodes and validates a JSON body, writing a 400 on failure.
// Validation errors raised while decoding, such as a bad due date, keep
// their own message.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			HandleAPIError(w, r, ve, ErrorMessages{})
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, shared.KindValidation, msgInvalidRequest, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, ErrorMessages{})
		return false
	}
	return true
}

// parseUUIDParam parses an optional UUID query or body value. Empty means absent.
func parseUUIDParam(value, field string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, domain.NewValidationError(field, "Invalid "+field+" ID")
	}
	return &id, nil
}

// parsePositiveIntParam parses an optional integer query value.
func parsePositiveIntParam(value string, invalid error) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return nil, invalid
	}
	return &n, nil
}
