// Package janitor periodically removes expired entries from the token
// revocation list. A revoked token past its own expiry is rejected by
// signature validation anyway, so keeping its ID only grows the table.
package janitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/phrazzld/tasker-api/internal/store"
	"github.com/robfig/cron/v3"
)

// purgeTimeout bounds a single scheduled purge.
const purgeTimeout = 30 * time.Second

// Janitor runs PurgeNow on a cron schedule.
type Janitor struct {
	revocations store.RevocationStore
	cron        *cron.Cron
	timeFunc    func() time.Time
	logger      *slog.Logger
}

// New creates a Janitor for the given schedule. The schedule uses standard
// five-field cron syntax or a descriptor such as "@hourly" or "@every 30m".
func New(revocations store.RevocationStore, schedule string, logger *slog.Logger) (*Janitor, error) {
	if revocations == nil {
		return nil, errors.New("janitor: revocation store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	j := &Janitor{
		revocations: revocations,
		cron:        cron.New(),
		timeFunc:    time.Now,
		logger:      logger.With(slog.String("component", "janitor")),
	}

	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return nil, fmt.Errorf("janitor: invalid schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start begins running the schedule in the background.
func (j *Janitor) Start() {
	j.cron.Start()
	j.logger.Info("revocation janitor started")
}

// Stop halts the schedule and waits for a running purge to finish, or for
// ctx to be done.
func (j *Janitor) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
		j.logger.Info("revocation janitor stopped")
	case <-ctx.Done():
		j.logger.Warn("revocation janitor did not stop in time", "error", ctx.Err())
	}
}

// PurgeNow deletes every revocation entry whose token has expired and
// returns the number removed.
func (j *Janitor) PurgeNow(ctx context.Context) (int64, error) {
	purged, err := j.revocations.PurgeExpired(ctx, j.timeFunc())
	if err != nil {
		return 0, fmt.Errorf("janitor: purge expired revocations: %w", err)
	}
	return purged, nil
}

func (j *Janitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	purged, err := j.PurgeNow(ctx)
	if err != nil {
		j.logger.Error("failed to purge expired revocations", "error", redact.Error(err))
		return
	}
	if purged > 0 {
		j.logger.Info("purged expired revocations", "count", purged)
	}
}
