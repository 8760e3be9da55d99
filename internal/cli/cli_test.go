package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vegeta "github.com/tsenart/vegeta/v12/lib"

	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/theme"
)

// fakeGitHub serves one user with two repositories.
func fakeGitHub(t *testing.T, userStatus int) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users/octo" && userStatus != http.StatusOK:
			w.WriteHeader(userStatus)
			w.Write([]byte(`{"message":"Not Found"}`))
		case r.URL.Path == "/users/octo":
			w.Write([]byte(`{"login":"octo","name":"Octo Cat","followers":3}`))
		case r.URL.Path == "/users/octo/repos" && r.URL.Query().Get("page") == "1":
			fmt.Fprintf(w, `[
				{"name":"a","stargazers_count":200,"languages_url":"%[1]s/repos/octo/a/languages","owner":{"login":"octo"}},
				{"name":"b","stargazers_count":100,"languages_url":"%[1]s/repos/octo/b/languages","owner":{"login":"octo"}}
			]`, server.URL)
		case r.URL.Path == "/users/octo/repos":
			w.Write([]byte(`[]`))
		case r.URL.Path == "/repos/octo/a/languages":
			w.Write([]byte(`{"Go":800}`))
		case r.URL.Path == "/repos/octo/b/languages":
			w.Write([]byte(`{"Python":200}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// testEnv points the CLI at server with caching and activity search off.
func testEnv(t *testing.T, server *httptest.Server) {
	t.Helper()
	t.Setenv("GITHUB_API_URL", server.URL)
	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("STATCARD_CACHE", "none")
	t.Setenv("STATCARD_ACTIVITY", "none")
	t.Setenv("STATCARD_SNAPSHOT", "")
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	_, err := executeOutput(t, args...)
	return err
}

// executeOutput runs the root command and returns what it printed to stdout.
func executeOutput(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	t.Cleanup(func() { stdout = os.Stdout })
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	testEnv(t, fakeGitHub(t, http.StatusOK))
	out := filepath.Join(t.TempDir(), "cards", "dashboard.svg")

	printed, err := executeOutput(t, "render", "octo", "-o", out, "--theme", "cyan", "--layout", "ring")
	require.NoError(t, err)
	for _, want := range []string{"Card written", out, "2 repos", "300 stars", "2 languages", "fresh"} {
		assert.Contains(t, printed, want)
	}

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.HasPrefix(svg, "<svg"), "output does not start with <svg: %.40q", svg)
	for _, want := range []string{"Octo Cat", "language-ring", "80.0%"} {
		assert.Contains(t, svg, want)
	}
}

func TestRenderCommandFailureWritesNothing(t *testing.T) {
	testEnv(t, fakeGitHub(t, http.StatusNotFound))
	out := filepath.Join(t.TempDir(), "dashboard.svg")

	require.Error(t, execute(t, "render", "octo", "-o", out), "render should fail for an unknown user")
	assert.NoFileExists(t, out)
}

func TestRenderCommandInvalidConfig(t *testing.T) {
	testEnv(t, fakeGitHub(t, http.StatusOK))
	t.Setenv("STATCARD_LAYOUT", "pie")

	err := execute(t, "render", "octo", "-o", filepath.Join(t.TempDir(), "x.svg"))
	assert.Error(t, err, "invalid layout in the environment should fail setup")
}

func TestSyncOnce(t *testing.T) {
	testEnv(t, fakeGitHub(t, http.StatusOK))
	dir := t.TempDir()
	t.Setenv("STATCARD_SNAPSHOT_DIR", dir)

	require.NoError(t, execute(t, "sync", "--once", "octo"))
	assert.FileExists(t, filepath.Join(dir, "octo.json"))
}

func TestSyncRequiresUsers(t *testing.T) {
	testEnv(t, fakeGitHub(t, http.StatusOK))
	t.Setenv("STATCARD_SYNC_USERS", "")
	assert.Error(t, execute(t, "sync", "--once"), "sync without users should fail")
}

func TestThemesTable(t *testing.T) {
	out := themesTable(theme.Builtin())
	for _, name := range theme.Builtin().Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, theme.DefaultName+" *", "default theme should be marked")
}

func TestThemePickerModel(t *testing.T) {
	themes := theme.Builtin().Themes()
	var m tea.Model = NewThemePickerModel(themes)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	picker := m.(ThemePickerModel)
	require.NotNil(t, picker.Selected, "no theme selected")
	assert.Equal(t, themes[1].Name, picker.Selected.Name)
	assert.NotNil(t, cmd, "enter should quit the program")
	assert.Contains(t, picker.View(), themes[1].Name)
}

func TestThemePickerScrolls(t *testing.T) {
	themes := theme.Builtin().Themes()
	m := NewThemePickerModel(themes)
	m.Height = 2

	var model tea.Model = m
	for range themes {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	picker := model.(ThemePickerModel)
	assert.Equal(t, len(themes)-1, picker.Cursor)
	assert.Equal(t, len(themes)-2, picker.Offset)
}

func TestCardTargeter(t *testing.T) {
	next := cardTargeter("http://localhost:8080/", []string{"a", "b"}, []string{"dark", "cyan"})
	want := []string{
		"http://localhost:8080/api/card?theme=dark&username=a",
		"http://localhost:8080/api/card?theme=dark&username=b",
		"http://localhost:8080/api/card?theme=cyan&username=a",
		"http://localhost:8080/api/card?theme=cyan&username=b",
		"http://localhost:8080/api/card?theme=dark&username=a",
	}
	for i, w := range want {
		var tgt vegeta.Target
		require.NoError(t, next(&tgt), "target %d", i)
		assert.Equal(t, w, tgt.URL, "target %d", i)
		assert.Equal(t, http.MethodGet, tgt.Method)
	}
	assert.Equal(t, vegeta.ErrNilTarget, next(nil))
}

func TestRunLoadtest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/card" || r.URL.Query().Get("username") == "" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte("<svg/>"))
	}))
	defer server.Close()

	metrics, err := runLoadtest(context.Background(), loadtestOpts{
		target:   server.URL,
		users:    []string{"octo"},
		rate:     50,
		duration: 200 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NotZero(t, metrics.Requests, "no requests sent")
	assert.Equal(t, 1.0, metrics.Success, "status codes %v", metrics.StatusCodes)

	var buf bytes.Buffer
	printLoadtestReport(&buf, metrics)
	for _, want := range []string{"Requests", "p95", "p99", "200×"} {
		assert.Contains(t, buf.String(), want)
	}
}

func TestFormatStatusCodes(t *testing.T) {
	assert.Equal(t, "200×9 502×1", formatStatusCodes(map[string]int{"502": 1, "200": 9}))
}

func TestCachePath(t *testing.T) {
	testEnv(t, fakeGitHub(t, http.StatusOK))
	dir := t.TempDir()
	t.Setenv("STATCARD_CACHE_DIR", dir)

	printed, err := executeOutput(t, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(printed))
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ab"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ab", "one.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.json"), []byte("{}"), 0o644))

	n, err := clearDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
	assert.DirExists(t, dir, "dir itself should remain")
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			testEnv(t, fakeGitHub(t, http.StatusOK))
			printed, err := executeOutput(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, printed, appName)
		})
	}
	assert.Error(t, execute(t, "completion", "tcsh"))
}

func TestCardFlagCompletions(t *testing.T) {
	themes, directive := completeThemes(nil, nil, "")
	assert.ElementsMatch(t, theme.Builtin().Names(), themes)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	layouts, _ := completeLayouts(nil, nil, "r")
	assert.Equal(t, []string{"ring"}, layouts)

	none, _ := completeLayouts(nil, nil, "pie")
	assert.Empty(t, none)
}

func TestNewCacheDisabled(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		noCache bool
		reason  string
	}{
		{"flag", "file", true, "--no-cache"},
		{"config", "none", false, "STATCARD_CACHE=none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			c := New(&logs, LogDebug)
			c.cfg.Cache.Backend = tt.backend

			got, err := c.newCache(context.Background(), tt.noCache)
			require.NoError(t, err)
			nc, ok := got.(*cache.NullCache)
			require.True(t, ok, "got %T, want *cache.NullCache", got)
			assert.Equal(t, tt.reason, nc.Reason())
			assert.Contains(t, logs.String(), "cache disabled")
		})
	}
}
