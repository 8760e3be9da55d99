package snapshot

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Config selects and addresses a snapshot backend.
type Config struct {
	Backend string `toml:"backend" yaml:"backend"`
	Dir     string `toml:"dir" yaml:"dir"` // file backend
	URL     string `toml:"url" yaml:"url"` // redis, mongo or postgres URL
}

// Open connects to the configured backend. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case "", BackendFile:
		s, err = NewFileStore(cfg.Dir)
	case BackendRedis:
		s, err = NewRedisStore(ctx, cfg.URL)
	case BackendMongo:
		s, err = NewMongoStore(ctx, cfg.URL)
	case BackendPostgres:
		s, err = NewPostgresStore(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
