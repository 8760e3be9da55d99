package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/httputil"
	"github.com/matzehuels/statcard/pkg/integrations"
)

func testClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	return NewClient(Options{
		Token:   token,
		BaseURL: baseURL,
		Retry:   httputil.Policy{Attempts: 3, BaseDelay: time.Millisecond, MaxWait: time.Second},
	})
}

func TestClientHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(userResponse{Login: "octo"})
	}))
	defer server.Close()

	_, err := testClient(t, server.URL, "secret").FetchUser(context.Background(), "octo", true)
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.github+json", got.Get("Accept"))
	assert.Equal(t, APIVersion, got.Get("X-GitHub-Api-Version"))
	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("User-Agent"))
}

func TestClientNoTokenNoAuthorization(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"login":"octo"}`))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL, "").FetchUser(context.Background(), "octo", true)
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestFetchUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octo" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"login":"octo","name":"Octo Cat","public_repos":8,"followers":42,"created_at":"2011-01-25T18:44:36Z"}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	u, err := c.FetchUser(context.Background(), "octo", true)
	require.NoError(t, err)
	assert.Equal(t, "Octo Cat", u.Name)
	assert.Equal(t, 42, u.Followers)
	assert.Equal(t, 8, u.PublicRepos)
	assert.Equal(t, 2011, u.CreatedAt.Year())

	_, err = c.FetchUser(context.Background(), "ghost", true)
	assert.ErrorIs(t, err, integrations.ErrNotFound)
	var apiErr *errs.RemoteAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestFetchRepositoriesPaginates(t *testing.T) {
	var pages []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pages = append(pages, page)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		var out []repoResponse
		if page <= 2 {
			for i := range 3 {
				out = append(out, repoResponse{
					Name:         fmt.Sprintf("repo-%d-%d", page, i),
					Stars:        page,
					LanguagesURL: "x",
				})
			}
		}
		json.NewEncoder(w).Encode(out)
	}))
	defer server.Close()

	repos, err := testClient(t, server.URL, "").FetchRepositories(context.Background(), "octo", true)
	require.NoError(t, err)
	assert.Len(t, repos, 6)
	assert.Equal(t, []int{1, 2, 3}, pages)
	assert.Equal(t, "octo", repos[0].Owner, "owner falls back to the username")
}

func TestFetchRepositoriesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repos, err := testClient(t, server.URL, "").FetchRepositories(context.Background(), "octo", true)
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestFetchRepositoriesBounded(t *testing.T) {
	t.Run("page parameter ignored", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`[{"name":"a","owner":{"login":"octo"}},{"name":"b","owner":{"login":"octo"}}]`))
		}))
		defer server.Close()

		repos, err := testClient(t, server.URL, "").FetchRepositories(context.Background(), "octo", true)
		require.NoError(t, err)
		assert.Len(t, repos, 2)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("page cap", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			fmt.Fprintf(w, `[{"name":"repo-%s"}]`, r.URL.Query().Get("page"))
		}))
		defer server.Close()

		c := NewClient(Options{BaseURL: server.URL, MaxPages: 3})
		repos, err := c.FetchRepositories(context.Background(), "octo", true)
		require.NoError(t, err)
		assert.Len(t, repos, 3)
		assert.EqualValues(t, 3, calls.Load())
	})
}

func TestFetchLanguagesRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"Go":1200,"Shell":30}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	langs, err := c.Languages(true).FetchLanguages(context.Background(), server.URL+"/repos/octo/a/languages")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Go": 1200, "Shell": 30}, langs)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchActivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		switch {
		case r.URL.Path == "/search/commits":
			w.Write([]byte(`{"total_count":1000}`))
		case q == "author:octo type:pr":
			w.Write([]byte(`{"total_count":200}`))
		case q == "author:octo type:issue":
			w.Write([]byte(`{"total_count":50}`))
		case q == "author:octo type:pr is:merged -user:octo":
			w.Write([]byte(`{"total_count":3,"items":[
				{"repository_url":"https://api.github.com/repos/a/x"},
				{"repository_url":"https://api.github.com/repos/a/x"},
				{"repository_url":"https://api.github.com/repos/b/y"}]}`))
		default:
			t.Errorf("unexpected query %q on %s", q, r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	act, err := testClient(t, server.URL, "").FetchActivity(context.Background(), "octo", true)
	require.NoError(t, err)
	assert.Equal(t, 1000, act.Commits)
	assert.Equal(t, 200, act.PullRequests)
	assert.Equal(t, 50, act.Issues)
	assert.Equal(t, 2, act.ContributedTo, "distinct repositories")
	assert.EqualValues(t, "live", act.Source)
}
