package release

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"
)

// DefaultAPIBase is the public GitHub REST endpoint.
const DefaultAPIBase = "https://api.github.com/"

// NewGitHubClient creates a GitHub API client on top of httpClient.
// When tokens is non-nil every API request carries its bearer token.
// An empty apiBase selects DefaultAPIBase.
func NewGitHubClient(httpClient *http.Client, apiBase string, tokens oauth2.TokenSource) (*github.Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if tokens != nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		authed := oauth2.NewClient(ctx, tokens)
		authed.Timeout = httpClient.Timeout
		httpClient = authed
	}

	client := github.NewClient(httpClient)
	if apiBase == "" {
		return client, nil
	}

	if !strings.HasSuffix(apiBase, "/") {
		apiBase += "/"
	}
	base, err := url.Parse(apiBase)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse api url: %q is not absolute", apiBase)
	}
	client.BaseURL = base

	return client, nil
}

// SplitRepo splits "owner/name" into its parts.
func SplitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.Trim(repo, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: want owner/name", repo)
	}
	return owner, name, nil
}
