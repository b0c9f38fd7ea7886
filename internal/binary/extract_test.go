package binary

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Helper function to create a test tar.gz archive
func createTestTarGz(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "test.tar.gz")

	archiveFile, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	defer func() { _ = archiveFile.Close() }()

	gzipWriter := gzip.NewWriter(archiveFile)
	defer func() { _ = gzipWriter.Close() }()

	tarWriter := tar.NewWriter(gzipWriter)
	defer func() { _ = tarWriter.Close() }()

	for name, content := range files {
		header := &tar.Header{
			Name:     name,
			Mode:     0755,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", name, err)
		}
		if _, err := tarWriter.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write content for %s: %v", name, err)
		}
	}

	return archivePath
}

func TestExtractBinary(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		binaryName string
		want       string
		wantErr    bool
	}{
		{
			name:       "single_entry",
			files:      map[string]string{"sprint": "sprint binary content"},
			binaryName: "sprint",
			want:       "sprint binary content",
		},
		{
			name: "binary_next_to_docs",
			files: map[string]string{
				"sprint":    "sprint binary content",
				"README.md": "readme content",
				"LICENSE":   "license content",
			},
			binaryName: "sprint",
			want:       "sprint binary content",
		},
		{
			name: "binary_in_subdirectory",
			files: map[string]string{
				"sprint_1.0.0_linux_amd64/sprint": "nested content",
			},
			binaryName: "sprint",
			want:       "nested content",
		},
		{
			name: "binary_not_found",
			files: map[string]string{
				"file1.txt": "content1",
			},
			binaryName: "sprint",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archivePath := createTestTarGz(t, tt.files)

			destDir := t.TempDir()
			destPath := filepath.Join(destDir, tt.binaryName)

			err := NewExtractor().ExtractBinary(archivePath, destPath, tt.binaryName)

			if tt.wantErr {
				if !errors.Is(err, ErrEntryNotFound) {
					t.Errorf("error = %v, want ErrEntryNotFound", err)
				}
				assertDirEmpty(t, destDir)
				return
			}
			if err != nil {
				t.Fatalf("extraction failed: %v", err)
			}

			got, err := os.ReadFile(destPath)
			if err != nil {
				t.Fatalf("failed to read extracted binary: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("content mismatch:\ngot:  %q\nwant: %q", string(got), tt.want)
			}

			// Only the binary, no leftover temp files
			entries, _ := os.ReadDir(destDir)
			if len(entries) != 1 {
				t.Errorf("dest dir has %d entries, want 1", len(entries))
			}
		})
	}
}

func TestExtractBinary_ReplacesExisting(t *testing.T) {
	archivePath := createTestTarGz(t, map[string]string{"sprint": "new"})

	destPath := filepath.Join(t.TempDir(), "sprint")
	if err := os.WriteFile(destPath, []byte("old"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := NewExtractor().ExtractBinary(archivePath, destPath, "sprint"); err != nil {
		t.Fatalf("extraction failed: %v", err)
	}

	got, _ := os.ReadFile(destPath)
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}
}

func TestExtractBinary_CorruptedArchive(t *testing.T) {
	tmpDir := t.TempDir()

	corruptedPath := filepath.Join(tmpDir, "corrupted.tar.gz")
	if err := os.WriteFile(corruptedPath, []byte("not a valid gzip file"), 0644); err != nil {
		t.Fatalf("failed to create corrupted file: %v", err)
	}

	destDir := filepath.Join(tmpDir, "bin")
	if err := os.Mkdir(destDir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := NewExtractor().ExtractBinary(corruptedPath, filepath.Join(destDir, "sprint"), "sprint"); err == nil {
		t.Error("expected error for corrupted archive")
	}
	assertDirEmpty(t, destDir)
}

func TestExtractBinary_MissingDestDir(t *testing.T) {
	archivePath := createTestTarGz(t, map[string]string{"sprint": "content"})
	destPath := filepath.Join(t.TempDir(), "missing", "sprint")

	if err := NewExtractor().ExtractBinary(archivePath, destPath, "sprint"); err == nil {
		t.Error("expected error when destination directory does not exist")
	}
}

func TestSetExecutable(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test-file")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if err := (OSFilesystem{}).ChmodExecutable(testFile); err != nil {
		t.Fatalf("ChmodExecutable failed: %v", err)
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("permissions mismatch: got %o, want 0755", info.Mode().Perm())
	}
}

func TestOSFilesystem_MkdirAllAndRemove(t *testing.T) {
	fs := OSFilesystem{}
	dir := filepath.Join(t.TempDir(), "prefix", "bin")

	if err := fs.MkdirAll(dir); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := fs.Remove(file); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := fs.Remove(file); err != nil {
		t.Errorf("removing a missing file should not fail: %v", err)
	}
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected %s to be empty, found %d entries", dir, len(entries))
	}
}
