package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/statcard/pkg/stats"
)

func sample(login string) *Snapshot {
	return &Snapshot{
		Login:     login,
		Profile:   stats.Profile{Login: login, DisplayName: login, RepoCount: 3, Stars: 12},
		Languages: stats.Histogram{"Go": 100, "Shell": 5},
		FetchedAt: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	}
}

// storeContract runs the behavior every backend must share.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "nobody-here")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, sample("Octo")))
	got, err := s.Get(ctx, "octo")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Profile.Stars)
	assert.Equal(t, stats.Histogram{"Go": 100, "Shell": 5}, got.Languages)
	assert.True(t, got.FetchedAt.Equal(sample("x").FetchedAt))

	next := sample("octo")
	next.Profile.Stars = 99
	next.PartialFailures = []string{"broken"}
	require.NoError(t, s.Put(ctx, next))
	got, err = s.Get(ctx, "OCTO")
	require.NoError(t, err)
	assert.Equal(t, 99, got.Profile.Stars, "Put must overwrite")
	assert.True(t, got.Partial())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	storeContract(t, s)
}

func TestFileStoreCorrupt(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.path("bad"), []byte("{"), 0o644))
	_, err = s.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("STATCARD_TEST_REDIS_URL")
	if url == "" {
		t.Skip("STATCARD_TEST_REDIS_URL not set")
	}
	s, err := NewRedisStore(context.Background(), url)
	require.NoError(t, err)
	defer s.Close()
	storeContract(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("STATCARD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("STATCARD_TEST_MONGO_URI not set")
	}
	s, err := NewMongoStore(context.Background(), uri)
	require.NoError(t, err)
	defer s.Close()
	storeContract(t, s)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("STATCARD_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STATCARD_TEST_DATABASE_URL not set")
	}
	s, err := NewPostgresStore(context.Background(), dsn)
	require.NoError(t, err)
	defer s.Close()
	storeContract(t, s)
}

func TestDatabaseFromURI(t *testing.T) {
	assert.Equal(t, "cards", databaseFromURI("mongodb://localhost:27017/cards?retryWrites=true"))
	assert.Equal(t, mongoDatabase, databaseFromURI("mongodb://localhost:27017"))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: "cassandra"})
	assert.Error(t, err)

	s, err := Open(context.Background(), Config{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
}

type countingLoader struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
}

func (l *countingLoader) Load(_ context.Context, login string, _ bool) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.calls == nil {
		l.calls = map[string]int{}
	}
	l.calls[login]++
	if err := l.fail[login]; err != nil {
		return nil, err
	}
	return sample(login), nil
}

func TestStoreSource(t *testing.T) {
	ctx := context.Background()

	t.Run("stored only", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		src := &StoreSource{Store: store}
		_, err := src.Load(ctx, "octo", false)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, store.Put(ctx, sample("octo")))
		snap, err := src.Load(ctx, "octo", true)
		require.NoError(t, err)
		assert.Equal(t, "octo", snap.Login)
	})

	t.Run("fallback on miss writes back", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		loader := &countingLoader{}
		src := &StoreSource{Store: store, Fallback: loader}

		_, err := src.Load(ctx, "octo", false)
		require.NoError(t, err)
		_, err = src.Load(ctx, "octo", false)
		require.NoError(t, err)
		assert.Equal(t, 1, loader.calls["octo"])
	})

	t.Run("stale snapshot reloaded", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		require.NoError(t, store.Put(ctx, sample("octo")))
		loader := &countingLoader{}
		src := &StoreSource{
			Store:    store,
			Fallback: loader,
			MaxAge:   time.Hour,
			Now:      func() time.Time { return sample("x").FetchedAt.Add(2 * time.Hour) },
		}
		_, err := src.Load(ctx, "octo", false)
		require.NoError(t, err)
		assert.Equal(t, 1, loader.calls["octo"])
	})

	t.Run("stale served when fallback fails", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		stored := sample("octo")
		require.NoError(t, store.Put(ctx, stored))
		down := errors.New("github down")
		loader := &countingLoader{fail: map[string]error{"octo": down}}
		src := &StoreSource{
			Store:    store,
			Fallback: loader,
			MaxAge:   time.Hour,
			Now:      func() time.Time { return stored.FetchedAt.Add(2 * time.Hour) },
			Logger:   log.New(io.Discard),
		}

		snap, err := src.Load(ctx, "octo", false)
		require.NoError(t, err)
		require.NotNil(t, snap)
		assert.Equal(t, stored.FetchedAt.Unix(), snap.FetchedAt.Unix())
		assert.Equal(t, 1, loader.calls["octo"])

		snap, err = src.Load(ctx, "octo", true)
		require.NoError(t, err, "refresh keeps the stored snapshot too")
		assert.Equal(t, "octo", snap.Login)
	})

	t.Run("miss with failing fallback", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		down := errors.New("github down")
		src := &StoreSource{Store: store, Fallback: &countingLoader{fail: map[string]error{"octo": down}}}
		snap, err := src.Load(ctx, "octo", false)
		assert.ErrorIs(t, err, down)
		assert.Nil(t, snap)
	})

	t.Run("refresh forces fallback", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		require.NoError(t, store.Put(ctx, sample("octo")))
		loader := &countingLoader{}
		src := &StoreSource{Store: store, Fallback: loader}
		_, err := src.Load(ctx, "octo", true)
		require.NoError(t, err)
		assert.Equal(t, 1, loader.calls["octo"])
	})
}

func TestSyncerRunOnce(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	boom := errors.New("boom")
	loader := &countingLoader{fail: map[string]error{"bad": boom}}
	var seen []string
	s := &Syncer{
		Source: loader,
		Store:  store,
		Users:  []string{"alice", "bad", "bob"},
		Logger: log.New(os.Stderr),
		Progress: func(login string, n, total int) {
			seen = append(seen, fmt.Sprintf("%s %d/%d", login, n, total))
		},
	}

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"alice 1/3", "bad 2/3", "bob 3/3"}, seen)

	for _, login := range []string{"alice", "bob"} {
		_, err := store.Get(context.Background(), login)
		assert.NoError(t, err, login)
	}
	_, err = store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSyncerRunStopsOnCancel(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	loader := &countingLoader{}
	s := &Syncer{Source: loader, Store: store, Users: []string{"alice"}, Interval: 5 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	loader.mu.Lock()
	defer loader.mu.Unlock()
	assert.GreaterOrEqual(t, loader.calls["alice"], 2)
}
