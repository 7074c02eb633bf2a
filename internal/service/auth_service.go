package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/phrazzld/tasker-api/internal/store"
)

// RegisterInput carries the signup fields.
type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

// LoginInput identifies a user by username or, when that is empty, by email.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult is returned by every operation that establishes identity.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthService registers users and issues, rotates and revokes their tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)

	// Logout revokes the access token described by claims and, when
	// refreshToken is a valid refresh token of the same user, that one too.
	Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error

	// Refresh exchanges a valid, unrevoked refresh token for a new pair and
	// revokes the one presented.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

type authService struct {
	users       store.UserStore
	revocations store.RevocationStore
	tokens      auth.JWTService
	hasher      auth.PasswordHasher
	lifetime    time.Duration
	dummyHash   string
	timeFunc    func() time.Time
	logger      *slog.Logger
}

// NewAuthService creates an AuthService. accessLifetime is only used to
// report AuthResult.ExpiresAt; the JWT service decides the real expiry.
func NewAuthService(
	users store.UserStore,
	revocations store.RevocationStore,
	tokens auth.JWTService,
	hasher auth.PasswordHasher,
	accessLifetime time.Duration,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil || revocations == nil || tokens == nil || hasher == nil {
		return nil, errors.New("auth service: nil dependency")
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Compared against when the user does not exist so that an unknown
	// username costs as much as a wrong password.
	dummyHash, err := hasher.Hash("tasker-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to prepare dummy hash: %w", err)
	}

	return &authService{
		users:       users,
		revocations: revocations,
		tokens:      tokens,
		hasher:      hasher,
		lifetime:    accessLifetime,
		dummyHash:   dummyHash,
		timeFunc:    time.Now,
		logger:      logger.With("component", "auth_service"),
	}, nil
}

func (s *authService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// Register implements AuthService.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	log := s.log(ctx)

	user, err := domain.NewUser(in.Username, in.Email, in.Phone, in.Password)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByIdentity(ctx, user.Username, user.Email, user.Phone)
	if err != nil {
		log.Error("failed to check existing identity", "error", redact.Error(err))
		return nil, NewServiceError("auth", "register", err)
	}
	if exists {
		log.Debug("signup rejected: identity already taken")
		return nil, store.ErrUserExists
	}

	user.HashedPassword, err = s.hasher.Hash(user.Password)
	if err != nil {
		return nil, NewServiceError("auth", "register", err)
	}
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			// lost a race with a concurrent signup
			return nil, store.ErrUserExists
		}
		log.Error("failed to create user", "error", redact.Error(err))
		return nil, NewServiceError("auth", "register", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return s.issue(ctx, user, "register")
}

// Login implements AuthService.
func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	log := s.log(ctx)
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	var (
		user *domain.User
		err  error
	)
	switch {
	case username != "":
		user, err = s.users.GetByUsername(ctx, username)
	case email != "":
		user, err = s.users.GetByEmail(ctx, email)
	default:
		return nil, ErrIdentifierRequired
	}

	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to look up user", "error", redact.Error(err))
			return nil, NewServiceError("auth", "login", err)
		}
		_ = s.hasher.Compare(s.dummyHash, in.Password)
		log.Debug("login rejected: unknown user")
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.HashedPassword, in.Password); err != nil {
		log.Debug("login rejected: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	log.Info("user logged in", "user_id", user.ID)
	return s.issue(ctx, user, "login")
}

// Logout implements AuthService.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error {
	if claims == nil {
		return auth.ErrMissingToken
	}
	log := s.log(ctx)

	if _, err := s.revocations.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAt); err != nil {
		log.Error("failed to revoke access token", "error", redact.Error(err), "user_id", claims.UserID)
		return NewServiceError("auth", "logout", err)
	}

	if refreshToken != "" {
		refresh, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
		switch {
		case err != nil:
			log.Debug("ignoring invalid refresh token on logout", "error", err)
		case refresh.UserID != claims.UserID:
			log.Warn("ignoring refresh token of another user on logout", "user_id", claims.UserID)
		default:
			if _, err := s.revocations.Revoke(ctx, refresh.ID, refresh.UserID, refresh.ExpiresAt); err != nil {
				log.Error("failed to revoke refresh token", "error", redact.Error(err), "user_id", claims.UserID)
				return NewServiceError("auth", "logout", err)
			}
		}
	}

	log.Info("user logged out", "user_id", claims.UserID, "token_id", claims.ID)
	return nil
}

// Refresh implements AuthService.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	log := s.log(ctx)

	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, NewServiceError("auth", "refresh", err)
	}

	// Revoking is the claim on the token: only the caller that inserts the
	// revocation may rotate it.
	rotated, err := s.revocations.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAt)
	if err != nil {
		log.Error("failed to revoke rotated refresh token", "error", redact.Error(err))
		return nil, NewServiceError("auth", "refresh", err)
	}
	if !rotated {
		log.Warn("revoked refresh token presented", "user_id", claims.UserID, "token_id", claims.ID)
		return nil, auth.ErrRevokedToken
	}

	return s.issue(ctx, user, "refresh")
}

func (s *authService) issue(ctx context.Context, user *domain.User, op string) (*AuthResult, error) {
	expiresAt := s.timeFunc().Add(s.lifetime)

	access, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, NewServiceError("auth", op, err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, NewServiceError("auth", op, err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}
