package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/phrazzld/tasker-api/internal/store"
)

// Client messages for the generic error kinds.
const (
	msgConflict           = "Username, email, or phone number already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Unauthorized. Please log in first."
	msgNotFound           = "Resource not found"
	msgInvalidEntity      = "Invalid entity data"
	msgInternal           = "An unexpected error occurred"
	msgInvalidRequest     = "Invalid request format"
)

// ErrorMessages overrides the client message for a handler's not-found and
// internal failures, e.g. "Task not found" and "Error fetching tasks".
type ErrorMessages struct {
	NotFound string
	Internal string
}

// MapErrorToStatusCode maps internal errors to an HTTP status and error kind.
// Unknown errors are internal errors.
func MapErrorToStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusBadRequest, shared.KindConflict

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, shared.KindInvalidCredentials

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest, shared.KindValidation

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, shared.KindUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, shared.KindNotFound

	default:
		return http.StatusInternalServerError, shared.KindInternal
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Validation
// errors carry their own message; everything else gets a fixed text so that
// internal details never leak.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgInternal
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	switch {
	case errors.Is(err, store.ErrDuplicate):
		return msgConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return msgInvalidCredentials
	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntity
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrRevokedToken):
		return "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Invalid refresh token"
	case errors.Is(err, auth.ErrWrongTokenType):
		return "Wrong token type"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return msgUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return msgNotFound
	default:
		return msgInternal
	}
}

// HandleAPIError is the single point where handler errors become responses.
// It logs the cause, redacted, and writes the error envelope.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, msgs ErrorMessages) {
	status, kind := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	switch {
	case status == http.StatusNotFound && msgs.NotFound != "":
		message = msgs.NotFound
	case status == http.StatusInternalServerError && msgs.Internal != "":
		message = msgs.Internal
	}

	var opts []shared.ResponseOption
	if kind == shared.KindInvalidCredentials {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, kind, message, err, opts...)
}

var errMissingClaims = fmt.Errorf("%w: no token claims in context", domain.ErrUnauthorized)
