package binary

import (
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/platform"
)

// Name is the executable entry inside every release archive.
const Name = "sprint"

// ArchiveRef locates a release archive and its companion files.
type ArchiveRef struct {
	Version      string // normalized, no leading "v"
	Target       platform.Target
	Filename     string // sprint_<version>_<os>_<arch>.tar.gz
	URL          string // archive download URL
	ChecksumsURL string // checksums.txt for the release
	SignatureURL string // detached OpenPGP signature of the archive
}

// VerificationMethod indicates how an archive was verified
type VerificationMethod int

const (
	// VerificationNone indicates the archive was not verified
	VerificationNone VerificationMethod = iota
	// VerificationGPG indicates OpenPGP signature verification was used
	VerificationGPG
	// VerificationSHA256 indicates SHA256 checksum verification was used
	VerificationSHA256
	// VerificationBoth indicates both the checksum and the signature were verified
	VerificationBoth
)

// String returns the string representation of the verification method
func (v VerificationMethod) String() string {
	switch v {
	case VerificationGPG:
		return "GPG"
	case VerificationSHA256:
		return "SHA256"
	case VerificationBoth:
		return "SHA256+GPG"
	case VerificationNone:
		return "None"
	default:
		return "Unknown"
	}
}

// VerifyOptions selects which verification methods to apply.
type VerifyOptions struct {
	// Checksum verifies the archive against the release checksums.txt
	Checksum bool
	// KeyringPath enables detached signature verification with this keyring
	KeyringPath string
}

// Enabled reports whether any verification was requested.
func (o VerifyOptions) Enabled() bool {
	return o.Checksum || o.KeyringPath != ""
}
