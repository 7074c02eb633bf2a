package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/phrazzld/tasker-api/internal/store"
)

// PostgresRevocationStore implements store.RevocationStore on PostgreSQL.
type PostgresRevocationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRevocationStore creates a revocation store backed by db.
func NewPostgresRevocationStore(db store.DBTX, logger *slog.Logger) *PostgresRevocationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRevocationStore{
		db:     db,
		logger: logger.With(slog.String("component", "revocation_store")),
	}
}

var _ store.RevocationStore = (*PostgresRevocationStore)(nil)

// Revoke implements store.RevocationStore.Revoke
func (s *PostgresRevocationStore) Revoke(
	ctx context.Context,
	tokenID string,
	userID uuid.UUID,
	expiresAt time.Time,
) (bool, error) {
	query := `
		INSERT INTO revoked_tokens (token_id, user_id, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token_id) DO NOTHING
	`
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, tokenID, userID, expiresAt.UTC(), time.Now().UTC())
	if err != nil {
		log.Error("failed to revoke token",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return false, MapError(err, nil)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected for revocation",
			slog.String("error", redact.Error(err)))
		return false, store.NewStoreError("revocation", "revoke", "failed to get rows affected", err)
	}
	if rows == 0 {
		log.Debug("token already revoked", slog.String("user_id", userID.String()))
		return false, nil
	}

	log.Info("token revoked",
		slog.String("user_id", userID.String()),
		slog.Time("expires_at", expiresAt))
	return true, nil
}

// IsRevoked implements store.RevocationStore.IsRevoked
func (s *PostgresRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id = $1)`

	var revoked bool
	if err := s.db.QueryRowContext(ctx, query, tokenID).Scan(&revoked); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check token revocation",
			slog.String("error", redact.Error(err)))
		return false, store.NewStoreError("revocation", "check", "failed to check revocation", err)
	}
	return revoked, nil
}

// PurgeExpired implements store.RevocationStore.PurgeExpired
func (s *PostgresRevocationStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now.UTC())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to purge revoked tokens",
			slog.String("error", redact.Error(err)))
		return 0, store.NewStoreError("revocation", "purge", "failed to purge expired revocations", err)
	}
	return result.RowsAffected()
}
