package config

import (
	"strconv"
	"strings"
	"time"

	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/snapshot"
)

// Env lists the environment variables read by [Config.ApplyEnv].
var Env = []string{
	"GITHUB_TOKEN",
	"GITHUB_API_URL",
	"STATCARD_ACTIVITY",
	"STATCARD_ADDR",
	"STATCARD_STRICT",
	"STATCARD_DEMO_USER",
	"STATCARD_CACHE_CONTROL",
	"STATCARD_CACHE",
	"STATCARD_CACHE_DIR",
	"STATCARD_CACHE_TTL",
	"REDIS_URL",
	"STATCARD_SNAPSHOT",
	"STATCARD_SNAPSHOT_DIR",
	"STATCARD_SNAPSHOT_MAX_AGE",
	"MONGO_URI",
	"DATABASE_URL",
	"STATCARD_SYNC_USERS",
	"STATCARD_SYNC_INTERVAL",
	"STATCARD_THEME",
	"STATCARD_LAYOUT",
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides c with the variables in [Env] that are set and
// non-empty. REDIS_URL addresses the cache when the cache backend is redis
// and the snapshot store when that backend is redis; MONGO_URI and
// DATABASE_URL address the mongo and postgres snapshot stores.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	var firstErr error
	dur := func(key string, dst *time.Duration) {
		if v, ok := get(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				if firstErr == nil {
					firstErr = errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s", key)
				}
				return
			}
			*dst = d
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := get(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				if firstErr == nil {
					firstErr = errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s", key)
				}
				return
			}
			*dst = b
		}
	}

	str("GITHUB_TOKEN", &c.GitHub.Token)
	str("GITHUB_API_URL", &c.GitHub.BaseURL)
	str("STATCARD_ACTIVITY", &c.GitHub.Activity)

	str("STATCARD_ADDR", &c.Server.Addr)
	boolean("STATCARD_STRICT", &c.Server.Strict)
	str("STATCARD_DEMO_USER", &c.Server.DemoUser)
	str("STATCARD_CACHE_CONTROL", &c.Server.CacheControl)

	str("STATCARD_CACHE", &c.Cache.Backend)
	str("STATCARD_CACHE_DIR", &c.Cache.Dir)
	dur("STATCARD_CACHE_TTL", &c.Cache.TTL)

	str("STATCARD_SNAPSHOT", &c.Snapshot.Backend)
	str("STATCARD_SNAPSHOT_DIR", &c.Snapshot.Dir)
	dur("STATCARD_SNAPSHOT_MAX_AGE", &c.Snapshot.MaxAge)

	if v, ok := get("REDIS_URL"); ok {
		if c.Cache.Backend == CacheRedis {
			c.Cache.URL = v
		}
		if c.Snapshot.Backend == snapshot.BackendRedis {
			c.Snapshot.URL = v
		}
	}
	if v, ok := get("MONGO_URI"); ok && c.Snapshot.Backend == snapshot.BackendMongo {
		c.Snapshot.URL = v
	}
	if v, ok := get("DATABASE_URL"); ok && c.Snapshot.Backend == snapshot.BackendPostgres {
		c.Snapshot.URL = v
	}

	if v, ok := get("STATCARD_SYNC_USERS"); ok {
		c.Sync.Users = splitList(v)
	}
	dur("STATCARD_SYNC_INTERVAL", &c.Sync.Interval)

	str("STATCARD_THEME", &c.Card.Theme)
	str("STATCARD_LAYOUT", &c.Card.Layout)

	return firstErr
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
