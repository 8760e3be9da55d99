package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug entries to a
// charmbracelet logger. The CLI registers it under --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l (log.Default() when nil).
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

// Register installs h as the pipeline, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnFetchStart(_ context.Context, login string) {
	h.Logger.Debug("fetch started", "user", login)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, login string, repoCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("fetch failed", "user", login, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("fetch complete", "user", login, "repos", repoCount, "duration", d)
}

func (h *LogHooks) OnLanguageSkipped(_ context.Context, login, repo string, err error) {
	h.Logger.Debug("language fetch skipped", "user", login, "repo", repo, "err", err)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, login, theme string, size int, d time.Duration) {
	h.Logger.Debug("card rendered", "user", login, "theme", theme, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("github request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("github response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("github error", "method", method, "path", path, "err", err)
}

func (h *LogHooks) OnRateLimited(_ context.Context, path string, wait time.Duration) {
	h.Logger.Warn("github rate limited", "path", path, "wait", wait)
}
