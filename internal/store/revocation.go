package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevocationStore keeps the IDs of tokens that were logged out before they
// expired.
type RevocationStore interface {
	// Revoke records tokenID as unusable until expiresAt and reports whether
	// this call was the one that revoked it. Revoking an already revoked
	// token is not an error; it returns false.
	Revoke(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) (bool, error)

	// IsRevoked reports whether tokenID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// PurgeExpired deletes records whose expiry is before now and returns
	// how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
