package binary

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

var (
	// ErrChecksumMismatch is returned when the archive hash differs from checksums.txt
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrChecksumNotFound is returned when checksums.txt has no line for the archive
	ErrChecksumNotFound = errors.New("checksum not found")
)

// Verifier handles cryptographic verification of downloaded archives
type Verifier struct {
	downloader *Downloader
	opts       VerifyOptions
}

// NewVerifier creates a new verifier that fetches companion files with d.
func NewVerifier(d *Downloader, opts VerifyOptions) *Verifier {
	return &Verifier{
		downloader: d,
		opts:       opts,
	}
}

// Verify checks the archive at archivePath, which was downloaded from ref.
// Companion files are fetched next to the archive and removed afterwards.
// With no verification enabled it returns VerificationNone and does nothing.
func (v *Verifier) Verify(ctx context.Context, archivePath string, ref ArchiveRef) (VerificationMethod, error) {
	method := VerificationNone

	if v.opts.Checksum {
		checksumPath := archivePath + ".checksums.txt"
		defer os.Remove(checksumPath)

		if err := v.downloader.DownloadToFile(ctx, ref.ChecksumsURL, checksumPath); err != nil {
			return method, fmt.Errorf("download checksums: %w", err)
		}
		if err := verifySHA256(archivePath, checksumPath, ref.Filename); err != nil {
			return method, err
		}
		method = VerificationSHA256
	}

	if v.opts.KeyringPath != "" {
		keyring, err := LoadKeyring(v.opts.KeyringPath)
		if err != nil {
			return method, fmt.Errorf("load keyring: %w", err)
		}

		sigPath := archivePath + ".sig"
		defer os.Remove(sigPath)

		if err := v.downloader.DownloadToFile(ctx, ref.SignatureURL, sigPath); err != nil {
			return method, fmt.Errorf("download signature: %w", err)
		}
		if err := verifyGPG(archivePath, sigPath, keyring); err != nil {
			return method, err
		}
		if method == VerificationSHA256 {
			method = VerificationBoth
		} else {
			method = VerificationGPG
		}
	}

	return method, nil
}

// verifyGPG verifies a file using a detached signature (armored or binary)
func verifyGPG(filePath, signaturePath string, keyring openpgp.EntityList) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	sigFile, err := os.Open(signaturePath)
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, file, sigFile, nil)
	if err != nil {
		// Try non-armored signature
		if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("rewind archive: %w", seekErr)
		}
		if _, seekErr := sigFile.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("rewind signature: %w", seekErr)
		}
		_, err = openpgp.CheckDetachedSignature(keyring, file, sigFile, nil)
	}
	if err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}

	return nil
}

// verifySHA256 compares the file's SHA256 with the entry for filename in checksumPath
func verifySHA256(filePath, checksumPath, filename string) error {
	actualChecksum, err := calculateSHA256(filePath)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	expectedChecksum, err := findChecksum(checksumPath, filename)
	if err != nil {
		return fmt.Errorf("find checksum: %w", err)
	}

	// Compare checksums (case-insensitive)
	if !strings.EqualFold(actualChecksum, expectedChecksum) {
		return fmt.Errorf("%w for %s:\nactual:   %s\nexpected: %s",
			ErrChecksumMismatch, filename, actualChecksum, expectedChecksum)
	}

	return nil
}

// calculateSHA256 calculates the SHA256 checksum of a file
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum finds the checksum for a specific filename in a checksum file
// Format: "abc123def456  filename.tar.gz"
func findChecksum(checksumPath, filename string) (string, error) {
	file, err := os.Open(checksumPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		// sha256sum binary mode prefixes the name with '*'
		checksumFilename := strings.TrimPrefix(parts[1], "*")
		if checksumFilename == filename || filepath.Base(checksumFilename) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	return "", fmt.Errorf("%w for %s", ErrChecksumNotFound, filename)
}
