package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultSyncInterval is used when Syncer.Interval is not set.
const DefaultSyncInterval = 6 * time.Hour

// Syncer refreshes the snapshots of a fixed list of users.
type Syncer struct {
	Source   Loader
	Store    Store
	Users    []string
	Interval time.Duration
	Logger   *log.Logger

	// Progress, if set, is called before each user is fetched.
	Progress func(login string, n, total int)
}

// RunOnce reloads every user and overwrites its snapshot. A failing user is
// logged and skipped; the returned error joins all failures.
func (s *Syncer) RunOnce(ctx context.Context) error {
	logger := s.logger().With("run", uuid.NewString())
	start := time.Now()
	logger.Info("sync started", "users", len(s.Users))

	var errs []error
	synced := 0
	for i, login := range s.Users {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if s.Progress != nil {
			s.Progress(login, i+1, len(s.Users))
		}
		if err := s.syncUser(ctx, login); err != nil {
			logger.Error("sync failed", "user", login, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", login, err))
			continue
		}
		synced++
		logger.Debug("synced", "user", login)
	}

	logger.Info("sync finished", "synced", synced, "failed", len(s.Users)-synced, "duration", time.Since(start))
	return errors.Join(errs...)
}

func (s *Syncer) syncUser(ctx context.Context, login string) error {
	snap, err := s.Source.Load(ctx, login, true)
	if err != nil {
		return err
	}
	return s.Store.Put(ctx, snap)
}

// Run calls RunOnce immediately and then on every tick until ctx is done.
// Errors of individual runs are logged, not returned.
func (s *Syncer) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		_ = s.RunOnce(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Syncer) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
