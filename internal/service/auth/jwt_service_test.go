package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestService(secret string, now func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        time.Hour,
		refreshTokenLifetime: 7 * 24 * time.Hour,
		timeFunc:             now,
		clockSkew:            defaultClockSkew,
	}
}

func at(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   "short",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{
		JWTSecret:                   testSecret,
		RefreshTokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   testSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := newTestService(testSecret, at(fixedTime))

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err, "jti should be a uuid")
}

func TestTokenIDsAreUnique(t *testing.T) {
	t.Parallel()

	svc := newTestService(testSecret, at(fixedTime))
	userID := uuid.New()

	first, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	c1, err := svc.ValidateToken(context.Background(), first)
	require.NoError(t, err)
	c2, err := svc.ValidateToken(context.Background(), second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	issuer := newTestService(testSecret, at(fixedTime))
	token, err := issuer.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	refresh, err := issuer.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
		UserID:    userID,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
			ID:        uuid.NewString(),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		svc     *hmacJWTService
		token   string
		wantErr error
	}{
		{
			name:  "valid token",
			svc:   issuer,
			token: token,
		},
		{
			name:  "within clock skew after expiry",
			svc:   newTestService(testSecret, at(fixedTime.Add(time.Hour+time.Minute))),
			token: token,
		},
		{
			name:    "expired token",
			svc:     newTestService(testSecret, at(fixedTime.Add(2*time.Hour))),
			token:   token,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "issued in the future",
			svc:     newTestService(testSecret, at(fixedTime.Add(-time.Hour))),
			token:   token,
			wantErr: ErrTokenNotYetValid,
		},
		{
			name:    "invalid signature",
			svc:     newTestService(wrongSecret, at(fixedTime)),
			token:   token,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			svc:     issuer,
			token:   "this.is.not.a.valid.jwt.token",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "unsigned token",
			svc:     issuer,
			token:   noneToken,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "refresh token used as access token",
			svc:     issuer,
			token:   refresh,
			wantErr: ErrWrongTokenType,
		},
		{
			name:    "empty token",
			svc:     issuer,
			token:   "",
			wantErr: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := tt.svc.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	issuer := newTestService(testSecret, at(fixedTime))
	refresh, err := issuer.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)
	access, err := issuer.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := issuer.ValidateRefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, fixedTime.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())

	_, err = issuer.ValidateRefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	later := newTestService(testSecret, at(fixedTime.Add(8*24*time.Hour)))
	_, err = later.ValidateRefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)

	other := newTestService(wrongSecret, at(fixedTime))
	_, err = other.ValidateRefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	tampered := refresh[:strings.LastIndex(refresh, ".")+1] + "AAAA"
	_, err = issuer.ValidateRefreshToken(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
