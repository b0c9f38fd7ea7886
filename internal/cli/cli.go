// Package cli parses the sprint-install command line.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/config"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/installer"
)

// ErrHelp is returned by Parse after help was printed.
var ErrHelp = errors.New("help requested")

// UsageError reports an invalid command line.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Options are the parsed command-line flags.
type Options struct {
	Version     string
	Prefix      string
	DryRun      bool
	Verify      bool
	KeyringPath string
	ConfigPath  string
	Verbose     bool

	prefixSet  bool
	verifySet  bool
	keyringSet bool
}

const longHelp = `Download the sprint release archive for this machine, extract the sprint
binary and install it as <prefix>/bin/sprint.

Without --version the latest release is installed. It is looked up through
the GitHub releases API, then the repository tags, then the git remote.

Environment:
  GITHUB_TOKEN           access token for API, download and git requests
  SPRINT_PREFIX          install root (default /usr/local)
  SPRINT_REPO            release repository (default sprint-cli/sprint)
  SPRINT_TIMEOUT         HTTP timeout (default 30s)
  SPRINT_LOG_LEVEL       log level (default info)

Settings can also be placed in $XDG_CONFIG_HOME/sprint/install.lua.`

// Parse parses args (without the program name).
//
// Help output goes to stdout and yields ErrHelp. An invalid command line
// prints the usage text to stderr and yields a *UsageError.
func Parse(args []string, stdout, stderr io.Writer) (*Options, error) {
	opts := &Options{}
	ran := false

	cmd := &cobra.Command{
		Use:           "sprint-install",
		Short:         "Install the sprint CLI from a release archive",
		Long:          longHelp,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			opts.prefixSet = cmd.Flags().Changed("prefix")
			opts.verifySet = cmd.Flags().Changed("verify")
			opts.keyringSet = cmd.Flags().Changed("keyring")
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Version, "version", "v", "", "release to install, e.g. v1.2.3 (default: latest)")
	flags.StringVarP(&opts.Prefix, "prefix", "p", config.DefaultPrefix, "install root; the binary goes to <prefix>/bin")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "print the planned actions without performing them")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the archive against the release checksums.txt")
	flags.StringVar(&opts.KeyringPath, "keyring", "", "verify the archive signature with this OpenPGP keyring")
	flags.StringVar(&opts.ConfigPath, "config", "", "Lua config file (default: $XDG_CONFIG_HOME/sprint/install.lua)")
	flags.BoolVar(&opts.Verbose, "verbose", false, "enable debug logging")
	flags.SortFlags = false

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var usageErr *UsageError
		if !errors.As(err, &usageErr) {
			usageErr = &UsageError{Err: err}
		}
		fmt.Fprint(stderr, cmd.UsageString())
		return nil, usageErr
	}
	if !ran {
		return nil, ErrHelp
	}

	return opts, nil
}

// Apply overrides settings with the flags that were given on the command line.
func (o *Options) Apply(s *config.Settings) {
	if o.prefixSet {
		s.Prefix = o.Prefix
	}
	if o.verifySet {
		s.Verify = o.Verify
	}
	if o.keyringSet {
		s.Keyring = o.KeyringPath
	}
	if o.Verbose {
		s.LogLevel = "debug"
	}
}

// Request builds the install request from the flags and the merged settings.
func (o *Options) Request(s *config.Settings) installer.Request {
	return installer.Request{
		Version:     o.Version,
		Prefix:      s.Prefix,
		DryRun:      o.DryRun,
		Verify:      s.Verify,
		KeyringPath: s.Keyring,
	}
}
