// Package binary provides the low-level pieces used to install a sprint
// release: archive naming, HTTP download, single-entry archive extraction,
// filesystem permission changes and optional release verification.
//
// # Archive naming
//
// Release archives follow a fixed template:
//
//	<download-base>/<owner>/<repo>/releases/download/v<version>/sprint_<version>_<os>_<arch>.tar.gz
//
// Each archive contains exactly one executable entry named "sprint".
//
// # Verification
//
// Verification is opt-in and never changes what gets installed:
//   - SHA256 against the release's checksums.txt
//   - OpenPGP detached signature (<archive>.sig) against a user-supplied keyring
//
// # Usage
//
//	ref := binary.DefaultSource.ArchiveRef("1.2.3", platform.Target{OS: "linux", Arch: "amd64"})
//	dl := binary.NewDownloader(binary.NewHTTPClient(30*time.Second), nil)
//	if err := dl.DownloadToFile(ctx, ref.URL, archivePath); err != nil {
//	    return err
//	}
//	err := binary.NewExtractor().ExtractBinary(archivePath, "/usr/local/bin/sprint", binary.Name)
package binary
