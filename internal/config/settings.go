package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/binary"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/release"
)

// Settings is the merged installer configuration.
// Field names map to SPRINT_* environment variables through envconfig.
type Settings struct {
	// Repo is the release repository as owner/name
	Repo string
	// Prefix is the install root
	Prefix string
	// Verify enables checksum verification
	Verify bool
	// Keyring enables signature verification with this OpenPGP keyring
	Keyring string
	// Timeout bounds every HTTP request
	Timeout time.Duration
	// APIBase is the GitHub REST endpoint
	APIBase string `split_words:"true"`
	// DownloadBase hosts the release archives
	DownloadBase string `split_words:"true"`
	// GitURL overrides the git remote used for tag listing
	GitURL string `split_words:"true"`
	// LogLevel is a logrus level name
	LogLevel string `split_words:"true"`
	// Token authenticates API, download and git requests
	Token string `envconfig:"GITHUB_TOKEN"`

	// File is the Lua config that was applied, if any
	File string `ignored:"true"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Repo:         binary.DefaultRepo,
		Prefix:       DefaultPrefix,
		Timeout:      binary.DefaultTimeout,
		APIBase:      release.DefaultAPIBase,
		DownloadBase: binary.DefaultDownloadBase,
		LogLevel:     DefaultLogLevel,
	}
}

// DefaultPath returns the default Lua config location,
// $XDG_CONFIG_HOME/sprint/install.lua on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "sprint", "install.lua"), nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	var errs []error

	if _, _, err := release.SplitRepo(s.Repo); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(s.Prefix) == "" {
		errs = append(errs, errors.New("prefix must not be empty"))
	}
	if s.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", s.Timeout))
	}
	if err := checkHTTPURL("api base", s.APIBase); err != nil {
		errs = append(errs, err)
	}
	if err := checkHTTPURL("download base", s.DownloadBase); err != nil {
		errs = append(errs, err)
	}
	if s.GitURL != "" {
		if err := checkGitURL(s.GitURL); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

// Source returns the release archive location.
func (s *Settings) Source() binary.Source {
	return binary.Source{BaseURL: s.DownloadBase, Repo: s.Repo}
}

// GitRemoteURL returns the git remote to list tags from: GitURL when set,
// otherwise the repository under DownloadBase.
func (s *Settings) GitRemoteURL() string {
	if s.GitURL != "" {
		return s.GitURL
	}
	return fmt.Sprintf("%s/%s.git", strings.TrimRight(s.DownloadBase, "/"), strings.Trim(s.Repo, "/"))
}

// VerifyOptions returns the archive verification the settings enable.
func (s *Settings) VerifyOptions() binary.VerifyOptions {
	return binary.VerifyOptions{Checksum: s.Verify, KeyringPath: s.Keyring}
}

func checkHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s: %q is not an http(s) URL", name, raw)
	}
	return nil
}

// checkGitURL accepts URLs with a scheme and scp-like "user@host:path".
func checkGitURL(raw string) error {
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && (u.Host != "" || u.Scheme == "file") {
		return nil
	}
	if at := strings.Index(raw, "@"); at > 0 && strings.Index(raw[at:], ":") > 1 {
		return nil
	}
	return fmt.Errorf("git url: %q is not a git remote", raw)
}
