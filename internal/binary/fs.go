package binary

import (
	"fmt"
	"os"
)

// OSFilesystem performs the install's filesystem mutations on the real disk.
type OSFilesystem struct{}

// MkdirAll creates path and any missing parents with mode 0755.
func (OSFilesystem) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}

// ChmodExecutable makes path executable (0755).
func (OSFilesystem) ChmodExecutable(path string) error {
	return SetExecutable(path)
}

// Remove deletes path. A missing file is not an error.
func (OSFilesystem) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// SetExecutable sets executable permissions on a file
func SetExecutable(path string) error {
	// Set permissions to 0755 (rwxr-xr-x)
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
