package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit, "NullCache.Get should always miss")
	assert.Nil(t, data)

	assert.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))
	_, hit, _ = c.Get(ctx, "key")
	assert.False(t, hit, "NullCache should not store data")
	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestDisabledCacheReason(t *testing.T) {
	c := Disabled("--no-cache")
	assert.Equal(t, "--no-cache", c.Reason())
	_, hit, err := c.Get(context.Background(), "card:octocat")
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.Empty(t, NewNullCache().(*NullCache).Reason())
}

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "card:octocat", []byte("<svg/>"), time.Hour))
	data, hit, err := c.Get(ctx, "card:octocat")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "<svg/>", string(data))

	require.NoError(t, c.Delete(ctx, "card:octocat"))
	_, hit, _ = c.Get(ctx, "card:octocat")
	assert.False(t, hit, "entry still present after Delete")
	assert.NoError(t, c.Delete(ctx, "card:octocat"), "deleting a missing key is not an error")
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 10*time.Millisecond))
	_, hit, _ := c.Get(ctx, "key")
	require.True(t, hit, "fresh entry should hit")

	time.Sleep(20 * time.Millisecond)

	_, hit, err = c.Get(ctx, "key")
	assert.NoError(t, err)
	assert.False(t, hit, "expired entry should miss")
}

func TestFileCache_NoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "key", []byte("v"), 0))
	_, hit, _ := c.Get(ctx, "key")
	assert.True(t, hit, "entry without TTL should hit")
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "key", []byte("v"), 0))

	require.NoError(t, os.WriteFile(c.path("key"), []byte("{not json"), 0o644))
	_, hit, err := c.Get(ctx, "key")
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoFileExists(t, c.path("key"), "corrupt entry should be removed")
}

func TestFileCache_PathLayout(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	p1 := c.path("test")
	assert.Equal(t, p1, c.path("test"), "path should be deterministic")
	assert.NotEqual(t, p1, c.path("other"))
	assert.Regexp(t, `\.json$`, p1)
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	assert.Equal(t, h1, Hash([]byte("hello")))
	assert.NotEqual(t, h1, Hash([]byte("world")))
	assert.Len(t, h1, 64)
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	assert.Equal(t, "http:github:https://api.github.com/users/x",
		k.HTTPKey("github", "https://api.github.com/users/x"))

	base := CardKeyOpts{Username: "octocat", Theme: "orange", Layout: "bars", TopN: 5}
	k1 := k.CardKey(base)
	assert.Regexp(t, `^card:`, k1)
	assert.Equal(t, k1, k.CardKey(base), "CardKey should be deterministic")

	themed := base
	themed.Theme = "slate"
	assert.NotEqual(t, k1, k.CardKey(themed))

	tuned := base
	tuned.Settings = "3f1c09ab2d7e4410"
	assert.NotEqual(t, k1, k.CardKey(tuned), "scoring and policy settings are part of the key")
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "statcard:test:")

	assert.Equal(t, "statcard:test:http:github:k", scoped.HTTPKey("github", "k"))
	assert.Regexp(t, `^statcard:test:card:`, scoped.CardKey(CardKeyOpts{Username: "u"}))
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	assert.Equal(t, "prefix:http:test:key", scoped.HTTPKey("test", "key"))
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("STATCARD_TEST_REDIS_URL")
	if url == "" {
		t.Skip("STATCARD_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	require.NoError(t, err)
	defer c.Close()

	key := "statcard:test:" + t.Name()
	_, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, c.Set(ctx, key, []byte("v"), time.Minute))
	data, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "v", string(data))
	assert.NoError(t, c.Delete(ctx, key))
}
