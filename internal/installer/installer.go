// Package installer runs the sprint install pipeline: detect the platform,
// resolve the version, then download, verify, extract and chmod.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/binary"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/lock"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/logging"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/platform"
)

// Installer orchestrates a single install.
type Installer struct {
	detector    platform.Detector
	resolver    VersionResolver
	source      binary.Source
	fetcher     Fetcher
	extractor   Extractor
	fs          Filesystem
	newVerifier func(binary.VerifyOptions) Verifier
	tempDir     string
	out         io.Writer
	logger      logging.Logger
}

// Config holds the collaborators of an Installer.
type Config struct {
	// Detector finds the host platform (required)
	Detector platform.Detector
	// Resolver picks the version to install (required)
	Resolver VersionResolver
	// Fetcher downloads archives (required)
	Fetcher Fetcher
	// Source locates release archives (default: binary.DefaultSource)
	Source binary.Source
	// Extractor unpacks the binary (default: binary.NewExtractor())
	Extractor Extractor
	// Filesystem mutates the install prefix (default: binary.OSFilesystem)
	Filesystem Filesystem
	// NewVerifier builds the archive verifier. Defaults to a binary.Verifier
	// when Fetcher is a *binary.Downloader.
	NewVerifier func(binary.VerifyOptions) Verifier
	// TempDir holds the downloaded archive (default: os.TempDir())
	TempDir string
	// Out receives user-facing progress lines (default: discarded)
	Out io.Writer
	// Logger receives diagnostics (default: no-op)
	Logger logging.Logger
}

// New creates an Installer from cfg.
func New(cfg Config) (*Installer, error) {
	if cfg.Detector == nil {
		return nil, fmt.Errorf("Detector is required")
	}
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("Resolver is required")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("Fetcher is required")
	}

	inst := &Installer{
		detector:    cfg.Detector,
		resolver:    cfg.Resolver,
		source:      cfg.Source,
		fetcher:     cfg.Fetcher,
		extractor:   cfg.Extractor,
		fs:          cfg.Filesystem,
		newVerifier: cfg.NewVerifier,
		tempDir:     cfg.TempDir,
		out:         cfg.Out,
		logger:      logging.OrNop(cfg.Logger),
	}

	if inst.source.BaseURL == "" {
		inst.source.BaseURL = binary.DefaultDownloadBase
	}
	if inst.source.Repo == "" {
		inst.source.Repo = binary.DefaultRepo
	}
	if inst.extractor == nil {
		inst.extractor = binary.NewExtractor()
	}
	if inst.fs == nil {
		inst.fs = binary.OSFilesystem{}
	}
	if inst.newVerifier == nil {
		if d, ok := cfg.Fetcher.(*binary.Downloader); ok {
			inst.newVerifier = func(opts binary.VerifyOptions) Verifier {
				return binary.NewVerifier(d, opts)
			}
		}
	}
	if inst.tempDir == "" {
		inst.tempDir = os.TempDir()
	}
	if inst.out == nil {
		inst.out = io.Discard
	}

	return inst, nil
}

// Execute runs the install described by req.
//
// Extraction and chmod run while holding the lock.Lock of Prefix/bin.
// In a dry run every step only prints "would ..." and nothing touches the
// network or the filesystem. On a step failure the remaining steps are
// skipped, the temporary archive is left in place, and the error is a
// *StepError. On success the temporary archive is removed and the install
// path is printed.
func (i *Installer) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.Prefix == "" {
		return nil, errors.New("install prefix is required")
	}
	verifyOpts := req.VerifyOptions()
	if verifyOpts.Enabled() && i.newVerifier == nil {
		return nil, errors.New("archive verification is not available")
	}

	info, err := i.detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	i.logger.Debug("detected platform", "target", info.Target.String(), "os", info.OSRaw, "arch", info.ArchRaw)

	version, err := i.resolver.Resolve(ctx, req.Version, req.DryRun)
	if err != nil {
		return nil, err
	}

	ref := i.source.ArchiveRef(version, info.Target)
	binDir := filepath.Join(filepath.Clean(req.Prefix), "bin")
	binPath := filepath.Join(binDir, binary.Name)
	archivePath := filepath.Join(i.tempDir, fmt.Sprintf("%s-%s.tar.gz", binary.Name, uuid.NewString()))

	result := &Result{
		Version: version,
		Target:  info.Target,
		Archive: ref,
		Path:    binPath,
		DryRun:  req.DryRun,
	}

	i.logger.Info("installing sprint", "version", version, "target", info.Target.String(), "prefix", req.Prefix)

	if req.DryRun {
		i.printf("would download %s to %s\n", ref.URL, archivePath)
		if verifyOpts.Enabled() {
			i.printf("would verify %s (%s)\n", ref.Filename, plannedMethod(verifyOpts))
		}
		i.printf("would create directory %s\n", binDir)
		i.printf("would extract %s from %s to %s\n", binary.Name, archivePath, binPath)
		i.printf("would chmod 0755 %s\n", binPath)
		return result, nil
	}

	i.printf("downloading %s\n", ref.URL)
	if err := i.fetcher.DownloadToFile(ctx, ref.URL, archivePath); err != nil {
		return nil, &StepError{Step: StepDownload, Err: err}
	}
	i.logger.Debug("downloaded archive", "path", archivePath)

	if verifyOpts.Enabled() {
		method, err := i.newVerifier(verifyOpts).Verify(ctx, archivePath, ref)
		if err != nil {
			i.logger.Warn("keeping archive after failed step", "path", archivePath)
			return nil, &StepError{Step: StepVerify, Err: err}
		}
		result.Verification = method
		i.printf("verified %s (%s)\n", ref.Filename, method)
	}

	if err := i.fs.MkdirAll(binDir); err != nil {
		i.logger.Warn("keeping archive after failed step", "path", archivePath)
		return nil, &StepError{Step: StepMkdir, Err: err}
	}

	held, err := lock.Acquire(ctx, binDir)
	if err != nil {
		i.logger.Warn("keeping archive after failed step", "path", archivePath)
		return nil, &StepError{Step: StepLock, Err: err}
	}
	defer func() {
		if err := held.Release(); err != nil {
			i.logger.Warn("failed to release install lock", "path", held.Path(), "error", err)
		}
	}()

	if err := i.extractor.ExtractBinary(archivePath, binPath, binary.Name); err != nil {
		i.logger.Warn("keeping archive after failed step", "path", archivePath)
		return nil, &StepError{Step: StepExtract, Err: err}
	}

	if err := i.fs.ChmodExecutable(binPath); err != nil {
		i.logger.Warn("keeping archive after failed step", "path", archivePath)
		return nil, &StepError{Step: StepChmod, Err: err}
	}

	if err := i.fs.Remove(archivePath); err != nil {
		i.logger.Warn("failed to remove temporary archive", "path", archivePath, "error", err)
	}

	i.printf("installed %s %s to %s\n", binary.Name, version, binPath)
	return result, nil
}

func (i *Installer) printf(format string, args ...interface{}) {
	fmt.Fprintf(i.out, format, args...)
}

func plannedMethod(opts binary.VerifyOptions) binary.VerificationMethod {
	switch {
	case opts.Checksum && opts.KeyringPath != "":
		return binary.VerificationBoth
	case opts.KeyringPath != "":
		return binary.VerificationGPG
	case opts.Checksum:
		return binary.VerificationSHA256
	default:
		return binary.VerificationNone
	}
}
