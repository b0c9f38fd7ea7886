// Package git provides read-only access to remote git repositories
// with context support and proper error handling.
package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Common Git errors
var (
	ErrRepositoryNotFound = errors.New("git repository not found")
	ErrAuthRequired       = errors.New("git remote requires authentication")
	ErrEmptyURL           = errors.New("git remote url cannot be empty")
)

// tokenUser is the basic auth user name GitHub expects with an access token.
const tokenUser = "x-access-token"

// Remote lists refs of remote repositories without cloning them.
type Remote struct {
	auth transport.AuthMethod
}

// NewRemote creates a Remote. A non-empty token is sent as HTTP basic auth.
func NewRemote(token string) *Remote {
	r := &Remote{}
	if token != "" {
		r.auth = &githttp.BasicAuth{Username: tokenUser, Password: token}
	}
	return r
}

// ListTags returns the tag names advertised by the repository at url, sorted
// by name. Peeled entries ("v1.0.0^{}") are folded into their tag.
// It is the equivalent of "git ls-remote --tags".
func (r *Remote) ListTags(ctx context.Context, url string) ([]string, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}

	remote := gogit.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &gogit.ListOptions{Auth: r.auth})
	if err != nil {
		return nil, translateError(url, err)
	}

	return tagNames(refs), nil
}

// tagNames extracts unique short tag names from refs.
func tagNames(refs []*plumbing.Reference) []string {
	seen := make(map[string]bool)
	var names []string
	for _, ref := range refs {
		if !ref.Name().IsTag() {
			continue
		}
		name := strings.TrimSuffix(ref.Name().Short(), "^{}")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func translateError(url string, err error) error {
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return fmt.Errorf("list %s: %w", url, ErrRepositoryNotFound)
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return fmt.Errorf("list %s: %w", url, ErrAuthRequired)
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		// no refs at all, so no tags
		return nil
	default:
		return fmt.Errorf("list %s: %w", url, err)
	}
}
