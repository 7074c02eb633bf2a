package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "service-test-secret-that-is-long-enough",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 60 * 24,
	})
	require.NoError(t, err)
	return svc
}

// seedUser stores a user directly and returns its ID.
func seedUser(t *testing.T, db *mocks.Memory, username string) uuid.UUID {
	t.Helper()
	user, err := domain.NewUser(username, username+"@example.com", phoneFor(username), "secret")
	require.NoError(t, err)
	user.HashedPassword = "hashed:secret"
	require.NoError(t, db.Users().Create(context.Background(), user))
	return user.ID
}

func phoneFor(username string) string {
	digits := []byte("5550000000")
	for i := 0; i < len(username) && i < 4; i++ {
		digits[6+i] = '0' + username[i]%10
	}
	return string(digits)
}

func ptr[T any](v T) *T { return &v }
