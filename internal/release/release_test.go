package release

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v59/github"
	"github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})
}

type fakeLister struct {
	tags  []string
	err   error
	calls int
}

func (f *fakeLister) ListTags(ctx context.Context, url string) ([]string, error) {
	f.calls++
	return f.tags, f.err
}

type fakeStrategy struct {
	name    string
	version string
	err     error
	calls   int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Latest(ctx context.Context) (string, error) {
	f.calls++
	return f.version, f.err
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "1.2.3", Normalize("v1.2.3"))
	require.Equal(t, "1.2.3", Normalize("1.2.3"))
	require.Equal(t, "1.2.3", Normalize("  v1.2.3\n"))
	require.Equal(t, "", Normalize(""))
}

func TestHighestTag(t *testing.T) {
	require.Equal(t, "v1.10.0", highestTag([]string{"v1.2.0", "v1.10.0", "v1.9.9"}))
	require.Equal(t, "2.0.0", highestTag([]string{"nightly", "2.0.0", "v2.0.0-rc.1"}))
	require.Equal(t, "", highestTag([]string{"nightly", "stable"}))
	require.Equal(t, "", highestTag(nil))
}

func TestLatestRelease(t *testing.T) {
	client := github.NewClient(mock.NewMockedHTTPClient(
		mock.WithRequestMatch(
			mock.GetReposReleasesLatestByOwnerByRepo,
			&github.RepositoryRelease{TagName: github.String("v1.4.2"), Name: github.String("Sprint 1.4.2")},
			&github.RepositoryRelease{Name: github.String("v1.4.3")},
		),
	))
	s := &LatestRelease{Client: client, Owner: "acme", Repo: "sprint"}

	v, err := s.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "v1.4.2", v)

	// Falls back to the release name when tag_name is empty
	v, err = s.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "v1.4.3", v)
}

func TestLatestRelease_NotFound(t *testing.T) {
	client := github.NewClient(mock.NewMockedHTTPClient(
		mock.WithRequestMatchHandler(mock.GetReposReleasesLatestByOwnerByRepo, notFound()),
	))
	s := &LatestRelease{Client: client, Owner: "acme", Repo: "sprint"}

	_, err := s.Latest(context.Background())
	require.Error(t, err)
}

func TestTagList(t *testing.T) {
	client := github.NewClient(mock.NewMockedHTTPClient(
		mock.WithRequestMatch(
			mock.GetReposTagsByOwnerByRepo,
			[]*github.RepositoryTag{
				{Name: github.String("v1.2.0")},
				{Name: github.String("v1.10.0")},
				{Name: github.String("experiment")},
			},
			[]*github.RepositoryTag{
				{Name: github.String("nightly")},
				{Name: github.String("stable")},
			},
			[]*github.RepositoryTag{},
		),
	))
	s := &TagList{Client: client, Owner: "acme", Repo: "sprint"}

	v, err := s.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "v1.10.0", v)

	v, err = s.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "nightly", v)

	v, err = s.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestRemoteTags(t *testing.T) {
	lister := &fakeLister{tags: []string{"v0.9.0", "v1.0.0", "v1.0.0-beta.1"}}
	s := &RemoteTags{Lister: lister, URL: "https://example.com/acme/sprint.git"}

	v, err := s.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "v1.0.0", v)

	lister.err = errors.New("connection refused")
	_, err = s.Latest(context.Background())
	require.Error(t, err)
}

func TestResolver_ExplicitVersion(t *testing.T) {
	s := &fakeStrategy{name: "never", version: "9.9.9"}
	r := NewResolver("acme/sprint", nil, s)

	for _, dryRun := range []bool{false, true} {
		v, err := r.Resolve(context.Background(), "v1.2.3", dryRun)
		require.NoError(t, err)
		require.Equal(t, "1.2.3", v)
	}
	require.Zero(t, s.calls)
}

func TestResolver_DryRunWithoutVersion(t *testing.T) {
	s := &fakeStrategy{name: "never", version: "9.9.9"}
	r := NewResolver("acme/sprint", nil, s)

	v, err := r.Resolve(context.Background(), "", true)
	require.NoError(t, err)
	require.Equal(t, Latest, v)
	require.Zero(t, s.calls, "dry run must not consult any strategy")
}

func TestResolver_FirstNonEmptyWins(t *testing.T) {
	failing := &fakeStrategy{name: "latest-release", err: errors.New("rate limited")}
	empty := &fakeStrategy{name: "tag-list"}
	remote := &fakeStrategy{name: "remote-tags", version: "v2.1.0"}
	unused := &fakeStrategy{name: "unused", version: "v3.0.0"}
	r := NewResolver("acme/sprint", nil, failing, empty, remote, unused)

	v, err := r.Resolve(context.Background(), "", false)
	require.NoError(t, err)
	require.Equal(t, "2.1.0", v)
	require.Equal(t, 1, failing.calls)
	require.Equal(t, 1, empty.calls)
	require.Zero(t, unused.calls)
}

func TestResolver_AllEmpty(t *testing.T) {
	r := NewResolver("acme/sprint", nil,
		&fakeStrategy{name: "latest-release", err: errors.New("boom")},
		&fakeStrategy{name: "tag-list"},
	)

	_, err := r.Resolve(context.Background(), "", false)
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	require.Equal(t, []string{"latest-release", "tag-list"}, resErr.Tried)
	require.Contains(t, err.Error(), "--version")
}

func TestResolver_GitHubChain(t *testing.T) {
	client := github.NewClient(mock.NewMockedHTTPClient(
		mock.WithRequestMatchHandler(mock.GetReposReleasesLatestByOwnerByRepo, notFound()),
		mock.WithRequestMatch(
			mock.GetReposTagsByOwnerByRepo,
			[]*github.RepositoryTag{{Name: github.String("v0.3.0")}, {Name: github.String("v0.4.0")}},
		),
	))
	lister := &fakeLister{tags: []string{"v9.0.0"}}

	r := NewResolver("acme/sprint", nil,
		&LatestRelease{Client: client, Owner: "acme", Repo: "sprint"},
		&TagList{Client: client, Owner: "acme", Repo: "sprint"},
		&RemoteTags{Lister: lister, URL: "https://example.com/acme/sprint.git"},
	)

	v, err := r.Resolve(context.Background(), "", false)
	require.NoError(t, err)
	require.Equal(t, "0.4.0", v)
	require.Zero(t, lister.calls)
}

func TestNewGitHubClient(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v1.0.0"}`))
	}))
	defer server.Close()

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "secret"})
	client, err := NewGitHubClient(server.Client(), server.URL+"/api", tokens)
	require.NoError(t, err)

	rel, _, err := client.Repositories.GetLatestRelease(context.Background(), "acme", "sprint")
	require.NoError(t, err)
	require.Equal(t, "v1.0.0", rel.GetTagName())
	require.Equal(t, "Bearer secret", gotAuth)
	require.Equal(t, "/api/repos/acme/sprint/releases/latest", gotPath)
}

func TestNewGitHubClient_InvalidBase(t *testing.T) {
	_, err := NewGitHubClient(nil, "not a url", nil)
	require.Error(t, err)
}

func TestSplitRepo(t *testing.T) {
	owner, name, err := SplitRepo("sprint-cli/sprint")
	require.NoError(t, err)
	require.Equal(t, "sprint-cli", owner)
	require.Equal(t, "sprint", name)

	for _, bad := range []string{"", "sprint", "/sprint", "a/b/c"} {
		_, _, err := SplitRepo(bad)
		require.Error(t, err, bad)
	}
}
