package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	first := GetTraceID(SetTraceID(ctx))
	second := GetTraceID(SetTraceID(ctx))
	assert.Len(t, first, 32)
	_, err := hex.DecodeString(first)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
	_, ok = ClaimsFromContext(context.Background())
	assert.False(t, ok)

	claims := &auth.Claims{UserID: uuid.New(), ID: "jti"}
	ctx := WithIdentity(context.Background(), claims)

	userID, ok := UserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, claims.UserID, userID)

	got, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, claims, got)

	nilUser := context.WithValue(context.Background(), UserIDContextKey, uuid.Nil)
	_, ok = UserIDFromContext(nilUser)
	assert.False(t, ok)
}
