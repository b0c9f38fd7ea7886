package release

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Latest is the placeholder version reported by a dry run that was not
// given an explicit version.
const Latest = "latest"

// Normalize trims whitespace and a single leading "v" from a tag.
func Normalize(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}

// highestTag returns the tag with the greatest semantic version.
// Tags that do not parse as versions are ignored. It returns "" when no tag
// parses.
func highestTag(tags []string) string {
	var (
		best    *semver.Version
		bestTag string
	)
	for _, tag := range tags {
		v, err := semver.NewVersion(strings.TrimSpace(tag))
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestTag = v, tag
		}
	}
	return bestTag
}
