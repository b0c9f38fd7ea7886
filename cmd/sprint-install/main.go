package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/binary"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/cli"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/config"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/git"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/installer"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/logging"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/platform"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/release"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/shell"
)

// Version will be set at build time via -ldflags
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one install and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := cli.Parse(args, stdout, stderr)
	if errors.Is(err, cli.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "sprint-install: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := config.DefaultLogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger := logging.NewLogrus(stderr, level)
	detector := platform.NewDetector()

	settings, err := config.NewLoader(detector, logger).Load(ctx, opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "sprint-install: %s\n", config.FormatError(err, opts.Verbose))
		return 1
	}
	opts.Apply(settings)
	logger = logging.NewLogrus(stderr, settings.LogLevel)
	if settings.File != "" {
		logger.Debug("using config file", "path", settings.File)
	}

	inst, err := newInstaller(settings, detector, stdout, logger)
	if err != nil {
		fmt.Fprintf(stderr, "sprint-install: %v\n", err)
		return 1
	}

	result, err := inst.Execute(ctx, opts.Request(settings))
	if err != nil {
		fmt.Fprintf(stderr, "sprint-install: %v\n", err)
		return 1
	}

	if binDir := filepath.Dir(result.Path); !result.DryRun && !shell.OnPath(binDir, os.Getenv("PATH")) {
		fmt.Fprint(stdout, shell.Advice(shell.DetectShell(ctx), binDir))
	}
	return 0
}

// newInstaller wires the installer to the network and filesystem.
func newInstaller(s *config.Settings, detector platform.Detector, out io.Writer, logger logging.Logger) (*installer.Installer, error) {
	httpClient := binary.NewHTTPClient(s.Timeout)
	tokens := binary.StaticToken(s.Token)

	downloader := binary.NewDownloader(httpClient, tokens)
	downloader.SetUserAgent("sprint-install/" + Version)

	gh, err := release.NewGitHubClient(httpClient, s.APIBase, tokens)
	if err != nil {
		return nil, fmt.Errorf("create github client: %w", err)
	}
	owner, repo, err := release.SplitRepo(s.Repo)
	if err != nil {
		return nil, err
	}

	resolver := release.NewResolver(s.Repo, logger,
		&release.LatestRelease{Client: gh, Owner: owner, Repo: repo},
		&release.TagList{Client: gh, Owner: owner, Repo: repo},
		&release.RemoteTags{Lister: git.NewRemote(s.Token), URL: s.GitRemoteURL()},
	)

	return installer.New(installer.Config{
		Detector: detector,
		Resolver: resolver,
		Fetcher:  downloader,
		Source:   s.Source(),
		Out:      out,
		Logger:   logger,
	})
}
