package testutil_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/testutil"
)

func TestSetupTestEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_should_be_hidden")
	t.Setenv("SPRINT_PREFIX", "/opt/real")

	home := testutil.SetupTestEnv(t)

	for _, k := range testutil.EnvVars {
		if _, ok := os.LookupEnv(k); ok {
			t.Errorf("%s is still set", k)
		}
	}

	if got := os.Getenv("HOME"); got != home {
		t.Errorf("HOME = %q, want %q", got, home)
	}
	if got := os.Getenv("XDG_CONFIG_HOME"); !strings.HasPrefix(got, home) {
		t.Errorf("XDG_CONFIG_HOME = %q, not under %q", got, home)
	}

	tmp := os.Getenv("TMPDIR")
	if !strings.HasPrefix(tmp, home) {
		t.Errorf("TMPDIR = %q, not under %q", tmp, home)
	}
	if _, err := os.Stat(tmp); err != nil {
		t.Errorf("TMPDIR does not exist: %v", err)
	}
	if !filepath.IsAbs(home) {
		t.Errorf("home %s is not absolute", home)
	}
}

func TestSetupTestEnv_Isolation(t *testing.T) {
	home1 := testutil.SetupTestEnv(t)

	t.Run("subtest", func(t *testing.T) {
		home2 := testutil.SetupTestEnv(t)
		if home1 == home2 {
			t.Error("expected different temp directories for different test contexts")
		}
	})
}

func TestTarGz(t *testing.T) {
	data := testutil.TarGz(t, map[string]string{"sprint": "bin", "README.md": "docs"})

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	tr := tar.NewReader(gz)

	got := map[string]string{}
	var order []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar.Next: %v", err)
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		got[hdr.Name] = string(body)
		order = append(order, hdr.Name)
	}

	if got["sprint"] != "bin" || got["README.md"] != "docs" || len(got) != 2 {
		t.Errorf("archive entries = %v", got)
	}
	if len(order) == 2 && order[0] != "README.md" {
		t.Errorf("entries not in name order: %v", order)
	}
}
