package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/snapshot"
	"github.com/matzehuels/statcard/pkg/theme"
)

const svgContentType = "image/svg+xml; charset=utf-8"

const usernameHint = "missing ?username= parameter, e.g. /api/card?username=octocat\n"

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	username := strings.TrimSpace(q.Get("username"))
	if username == "" {
		if s.opts.Strict || s.opts.DemoUser == "" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", NoStore)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(usernameHint))
			return
		}
		username = s.opts.DemoUser
	}

	opts := pipeline.Options{
		Username:    username,
		Theme:       q.Get("theme"),
		Layout:      q.Get("layout"),
		TopN:        s.opts.TopN,
		Refresh:     parseBool(q.Get("refresh")),
		ShowUpdated: s.opts.ShowUpdated,
	}
	if n, err := strconv.Atoi(q.Get("top_n")); err == nil {
		opts.TopN = n
	}

	res, err := s.renderer.Execute(r.Context(), opts)
	if res == nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err != nil {
		status := statusFor(err)
		s.logger.Warn("card failed",
			"user", username,
			"status", status,
			"code", errs.GetCode(err),
			"error", err,
			"request_id", RequestID(r.Context()))
		writeSVG(w, status, NoStore, res.SVG)
		return
	}

	etag := `"` + res.ETag + `"`
	w.Header().Set("ETag", etag)
	if matchETag(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("Cache-Control", s.opts.CacheControl)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeSVG(w, http.StatusOK, s.opts.CacheControl, res.SVG)
}

func writeSVG(w http.ResponseWriter, status int, cacheControl string, body []byte) {
	h := w.Header()
	h.Set("Content-Type", svgContentType)
	h.Set("Cache-Control", cacheControl)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, snapshot.ErrNotFound):
		return http.StatusNotFound
	case errs.IsUpstream(err):
		return http.StatusBadGateway
	case strings.HasPrefix(string(errs.GetCode(err)), "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// matchETag implements the weak comparison If-None-Match uses.
func matchETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

type themesResponse struct {
	Default string        `json:"default"`
	Themes  []theme.Theme `json:"themes"`
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themesResponse{
		Default: s.themes.Default().Name,
		Themes:  s.themes.Themes(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
