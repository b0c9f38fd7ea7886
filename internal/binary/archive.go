package binary

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/platform"
)

const (
	// DefaultDownloadBase is the host serving release assets
	DefaultDownloadBase = "https://github.com"
	// DefaultRepo is the repository sprint releases are published from
	DefaultRepo = "sprint-cli/sprint"
)

// Source describes where release archives are hosted.
type Source struct {
	BaseURL string // e.g. https://github.com
	Repo    string // owner/name
}

// DefaultSource is the public release location.
var DefaultSource = Source{BaseURL: DefaultDownloadBase, Repo: DefaultRepo}

// ArchiveFilename returns the archive name for a version and target.
// Pattern: sprint_{version}_{os}_{arch}.tar.gz
func ArchiveFilename(version string, target platform.Target) string {
	return fmt.Sprintf("%s_%s_%s_%s.tar.gz", Name, version, target.OS, target.Arch)
}

// ArchiveRef builds the download locations for a version and target.
// Pattern: {base}/{repo}/releases/download/v{version}/{filename}
func (s Source) ArchiveRef(version string, target platform.Target) ArchiveRef {
	version = strings.TrimPrefix(version, "v")
	filename := ArchiveFilename(version, target)
	releaseURL := fmt.Sprintf("%s/%s/releases/download/v%s",
		strings.TrimRight(s.BaseURL, "/"), strings.Trim(s.Repo, "/"), version)

	return ArchiveRef{
		Version:      version,
		Target:       target,
		Filename:     filename,
		URL:          fmt.Sprintf("%s/%s", releaseURL, filename),
		ChecksumsURL: fmt.Sprintf("%s/checksums.txt", releaseURL),
		SignatureURL: fmt.Sprintf("%s/%s.sig", releaseURL, filename),
	}
}

// BuildArchiveRef builds an ArchiveRef against DefaultSource.
func BuildArchiveRef(version string, target platform.Target) ArchiveRef {
	return DefaultSource.ArchiveRef(version, target)
}
