// Package snapshot persists precomputed card data so cards can be served
// without calling GitHub on every request.
//
// A [Snapshot] pairs a user's [stats.Profile] with their language histogram.
// Stores overwrite: Put replaces whatever was stored for the login, and
// there is no coordination between users. The [Syncer] refreshes snapshots
// periodically and [StoreSource] serves them to the rendering pipeline.
//
// Backends:
//
//   - [FileStore]: one JSON file per login
//   - [RedisStore]: key statcard:snapshot:<login>
//   - [MongoStore]: collection "snapshots", upserted by login
//   - [PostgresStore]: table snapshots, schema managed by embedded goose migrations
package snapshot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/matzehuels/statcard/pkg/stats"
)

// ErrNotFound is returned by [Store.Get] when no snapshot exists for a login.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the persisted result of one fetch-and-aggregate run.
type Snapshot struct {
	Login     string          `json:"login" bson:"login"`
	Profile   stats.Profile   `json:"profile" bson:"profile"`
	Languages stats.Histogram `json:"languages" bson:"languages"`
	FetchedAt time.Time       `json:"fetched_at" bson:"fetched_at"`

	// PartialFailures names repositories whose languages could not be fetched.
	PartialFailures []string `json:"partial_failures,omitempty" bson:"partial_failures,omitempty"`
}

// Partial reports whether some language fetches failed.
func (s *Snapshot) Partial() bool { return len(s.PartialFailures) > 0 }

// Store persists snapshots keyed by login. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the snapshot for login, or ErrNotFound.
	Get(ctx context.Context, login string) (*Snapshot, error)
	// Put stores s, replacing any previous snapshot for s.Login.
	Put(ctx context.Context, s *Snapshot) error
	// Close releases the store's connections.
	Close() error
}

// Loader produces a snapshot for a login. refresh bypasses any cache the
// loader keeps.
type Loader interface {
	Load(ctx context.Context, login string, refresh bool) (*Snapshot, error)
}

// LoaderFunc adapts a function to [Loader].
type LoaderFunc func(ctx context.Context, login string, refresh bool) (*Snapshot, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, login string, refresh bool) (*Snapshot, error) {
	return f(ctx, login, refresh)
}

// Key normalizes a login for storage. GitHub logins are case-insensitive.
func Key(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}
