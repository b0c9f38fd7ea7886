package installer

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/binary"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/platform"
)

// Request is one install invocation. It is built once from the command line
// and passed by value.
type Request struct {
	// Version to install; empty means the latest release
	Version string
	// Prefix is the install root; the binary lands in Prefix/bin
	Prefix string
	// DryRun reports the planned actions without performing them
	DryRun bool
	// Verify checks the archive against the release checksums.txt
	Verify bool
	// KeyringPath enables detached signature verification with this keyring
	KeyringPath string
}

// VerifyOptions returns the archive verification the request asks for.
func (r Request) VerifyOptions() binary.VerifyOptions {
	return binary.VerifyOptions{Checksum: r.Verify, KeyringPath: r.KeyringPath}
}

// Step names one stage of the install pipeline.
type Step string

const (
	StepDownload Step = "download"
	StepVerify   Step = "verify"
	StepMkdir    Step = "mkdir"
	StepLock     Step = "lock"
	StepExtract  Step = "extract"
	StepChmod    Step = "chmod"
)

// StepError reports which pipeline step failed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result describes a completed (or, for a dry run, planned) install.
type Result struct {
	Version      string
	Target       platform.Target
	Archive      binary.ArchiveRef
	Path         string // installed binary path
	Verification binary.VerificationMethod
	DryRun       bool
}

// Fetcher downloads a URL to a local file.
type Fetcher interface {
	DownloadToFile(ctx context.Context, url, destPath string) error
}

// Extractor pulls one named entry out of an archive.
type Extractor interface {
	ExtractBinary(archivePath, destPath, binaryName string) error
}

// Filesystem performs the install's filesystem mutations.
type Filesystem interface {
	MkdirAll(path string) error
	ChmodExecutable(path string) error
	Remove(path string) error
}

// VersionResolver turns the requested version into a concrete one.
type VersionResolver interface {
	Resolve(ctx context.Context, version string, dryRun bool) (string, error)
}

// Verifier checks a downloaded archive.
type Verifier interface {
	Verify(ctx context.Context, archivePath string, ref binary.ArchiveRef) (binary.VerificationMethod, error)
}
