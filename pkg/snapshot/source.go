package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// StoreSource serves snapshots from a [Store]. When a snapshot is missing,
// or older than MaxAge, and Fallback is set, it loads a fresh one and writes
// it back. A stored snapshot is served, stale or not, when the fallback fails.
type StoreSource struct {
	Store    Store
	Fallback Loader        // nil serves stored snapshots only
	MaxAge   time.Duration // 0 accepts snapshots of any age
	Now      func() time.Time
	Logger   *log.Logger
}

// Load implements the pipeline's source contract. refresh forces the
// fallback when one is configured.
func (s *StoreSource) Load(ctx context.Context, login string, refresh bool) (*Snapshot, error) {
	stored, err := s.Store.Get(ctx, login)
	switch {
	case err != nil && !errors.Is(err, ErrNotFound):
		return nil, err
	case s.Fallback == nil:
		return stored, err
	case err == nil && !refresh && !s.stale(stored):
		return stored, nil
	}

	snap, err := s.Fallback.Load(ctx, login, refresh)
	if err != nil {
		if stored == nil {
			return nil, err
		}
		s.logger().Warn("live fetch failed, serving stored snapshot",
			"user", login, "fetched_at", stored.FetchedAt, "error", err)
		return stored, nil
	}
	if err := s.Store.Put(ctx, snap); err != nil {
		s.logger().Warn("snapshot write-back failed", "user", login, "error", err)
	}
	return snap, nil
}

// Fingerprint forwards the fallback's fingerprint, if it has one.
func (s *StoreSource) Fingerprint() string {
	if f, ok := s.Fallback.(interface{ Fingerprint() string }); ok {
		return "store+" + f.Fingerprint()
	}
	return "store"
}

func (s *StoreSource) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (s *StoreSource) stale(snap *Snapshot) bool {
	if s.MaxAge <= 0 {
		return false
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().Sub(snap.FetchedAt) > s.MaxAge
}
