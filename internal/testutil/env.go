// Package testutil provides utilities for testing sprint-install in isolation.
package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// EnvVars lists every environment variable the installer reads.
var EnvVars = []string{
	"SPRINT_PREFIX", "SPRINT_REPO", "SPRINT_VERIFY", "SPRINT_KEYRING",
	"SPRINT_TIMEOUT", "SPRINT_API_BASE", "SPRINT_DOWNLOAD_BASE",
	"SPRINT_GIT_URL", "SPRINT_LOG_LEVEL", "SPRINT_GITHUB_TOKEN", "GITHUB_TOKEN",
}

// SetupTestEnv isolates a test from the user's environment so that tests
// never read a real config file, token or install prefix.
//
// Every variable in EnvVars is unset, and HOME, XDG_CONFIG_HOME and TMPDIR
// point into a fresh temp directory. The previous values are restored
// by the testing framework. It returns the fake home directory.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	for _, k := range EnvVars {
		// Setenv registers the restore; Unsetenv makes the variable absent.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	tmp := filepath.Join(home, "tmp")
	if err := os.MkdirAll(tmp, 0o750); err != nil {
		t.Fatalf("failed to create test directory %s: %v", tmp, err)
	}
	t.Setenv("TMPDIR", tmp)

	return home
}

// TarGz builds a gzip-compressed tar archive holding the given
// name -> content regular files, in name order.
func TarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for _, name := range names {
		content := files[name]
		hdr := &tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header for %s: %v", name, err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("write content for %s: %v", name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}
