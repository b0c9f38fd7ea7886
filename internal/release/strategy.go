package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v59/github"
)

// Strategy is one way of finding the latest published version.
// Latest returns "" when the strategy has no answer.
type Strategy interface {
	Name() string
	Latest(ctx context.Context) (string, error)
}

// LatestRelease reads the latest release of a repository from the GitHub API.
type LatestRelease struct {
	Client *github.Client
	Owner  string
	Repo   string
}

func (s *LatestRelease) Name() string { return "latest-release" }

// Latest returns the release tag_name, or the release name when the tag is
// empty.
func (s *LatestRelease) Latest(ctx context.Context) (string, error) {
	rel, _, err := s.Client.Repositories.GetLatestRelease(ctx, s.Owner, s.Repo)
	if err != nil {
		return "", fmt.Errorf("get latest release: %w", err)
	}
	if tag := strings.TrimSpace(rel.GetTagName()); tag != "" {
		return tag, nil
	}
	return strings.TrimSpace(rel.GetName()), nil
}

// TagList reads the first page of repository tags from the GitHub API.
type TagList struct {
	Client *github.Client
	Owner  string
	Repo   string
}

func (s *TagList) Name() string { return "tag-list" }

// Latest returns the highest semantic version tag on the first page, or the
// first listed tag when none of them parse.
func (s *TagList) Latest(ctx context.Context) (string, error) {
	tags, _, err := s.Client.Repositories.ListTags(ctx, s.Owner, s.Repo, &github.ListOptions{PerPage: 100})
	if err != nil {
		return "", fmt.Errorf("list tags: %w", err)
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if name := t.GetName(); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	if best := highestTag(names); best != "" {
		return best, nil
	}
	return names[0], nil
}

// TagLister enumerates the tag names of a git remote.
// It is satisfied by *git.Remote.
type TagLister interface {
	ListTags(ctx context.Context, url string) ([]string, error)
}

// RemoteTags picks the highest semantic version tag of a git remote.
type RemoteTags struct {
	Lister TagLister
	URL    string
}

func (s *RemoteTags) Name() string { return "remote-tags" }

func (s *RemoteTags) Latest(ctx context.Context) (string, error) {
	tags, err := s.Lister.ListTags(ctx, s.URL)
	if err != nil {
		return "", err
	}
	return highestTag(tags), nil
}
