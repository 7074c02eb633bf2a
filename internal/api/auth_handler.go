package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/service"
)

// CookieOptions controls the access token cookie set on signup and login.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService service.AuthService
	cookie      CookieOptions
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService service.AuthService, cookie CookieOptions, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{Internal: "Error creating user"})
		return
	}

	h.respondWithTokens(w, r, http.StatusCreated, "User created successfully", result)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{Internal: "Error logging in"})
		return
	}

	h.respondWithTokens(w, r, http.StatusOK, "Logged in successfully", result)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, ErrorMessages{Internal: "Error refreshing token"})
		return
	}

	h.respondWithTokens(w, r, http.StatusOK, "Token refreshed successfully", result)
}

// Logout handles POST /auth/logout. The body is optional; a refresh token
// in it is revoked together with the access token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	claims, ok := shared.ClaimsFromContext(r.Context())
	if !ok {
		log.Warn("token claims not found in request context")
		HandleAPIError(w, r, errMissingClaims, ErrorMessages{})
		return
	}

	var req LogoutRequest
	if r.ContentLength != 0 {
		if err := shared.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, shared.KindValidation, msgInvalidRequest, err)
			return
		}
	}

	if err := h.authService.Logout(r.Context(), claims, req.RefreshToken); err != nil {
		HandleAPIError(w, r, err, ErrorMessages{Internal: "Error logging out"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     shared.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) respondWithTokens(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	result *service.AuthResult,
) {
	http.SetCookie(w, &http.Cookie{
		Name:     shared.TokenCookieName,
		Value:    result.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	shared.RespondWithJSON(w, r, status, AuthResponse{
		Message:      message,
		User:         userToResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    result.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
