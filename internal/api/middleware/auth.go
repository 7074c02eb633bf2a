package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/phrazzld/tasker-api/internal/store"
)

const unauthorizedMessage = "Unauthorized. Please log in first."

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService  auth.JWTService
	revocations store.RevocationStore
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(
	jwtService auth.JWTService,
	revocations store.RevocationStore,
	logger *slog.Logger,
) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		jwtService:  jwtService,
		revocations: revocations,
		logger:      logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate validates the access token from the Authorization header, or
// the token cookie when the header is absent, and adds the user ID and
// claims to the request context. Any token problem ends the request with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		token, err := tokenFromRequest(r)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.KindUnauthorized,
				unauthorizedMessage, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			message := "Invalid token"
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				message = "Token expired"
			case errors.Is(err, auth.ErrWrongTokenType):
				message = "Wrong token type"
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.KindUnauthorized, message, err,
				shared.WithElevatedLogLevel())
			return
		}

		revoked, err := m.revocations.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			log.Error("failed to check token revocation", "error", redact.Error(err))
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, shared.KindInternal,
				"Authentication error", err)
			return
		}
		if revoked {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.KindUnauthorized,
				"Token has been revoked", auth.ErrRevokedToken, shared.WithElevatedLogLevel())
			return
		}

		ctx := shared.WithIdentity(r.Context(), claims)
		ctx = logger.WithLogger(ctx, log.With(slog.String("user_id", claims.UserID.String())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest reads "Authorization: Bearer <token>" or, failing that,
// the access token cookie.
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", auth.ErrInvalidToken
		}
		return strings.TrimSpace(token), nil
	}
	if cookie, err := r.Cookie(shared.TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", auth.ErrMissingToken
}
