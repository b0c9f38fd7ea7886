// Package platform detects the host operating system and architecture and
// maps them onto the release targets sprint is published for.
//
// Detection uses gopsutil for the kernel architecture and Linux distribution
// details, falling back to the Go runtime values when the host query fails.
// The detected information can also be injected into a Lua state as a
// read-only "platform" table for use by install configuration files.
package platform

import (
	"context"
	"errors"
	"fmt"
)

// Supported release operating systems.
const (
	OSLinux  = "linux"
	OSDarwin = "darwin"
)

// Supported release architectures.
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
)

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// ErrUnsupported is matched by every UnsupportedError.
var ErrUnsupported = errors.New("unsupported platform")

// UnsupportedError reports a host OS or architecture with no published build.
type UnsupportedError struct {
	Kind  string // "os" or "arch"
	Value string // raw value reported by the host
}

func (e *UnsupportedError) Error() string {
	switch e.Kind {
	case "os":
		return fmt.Sprintf("unsupported operating system: %q (supported: linux, darwin)", e.Value)
	case "arch":
		return fmt.Sprintf("unsupported architecture: %q (supported: amd64, arm64)", e.Value)
	default:
		return fmt.Sprintf("unsupported platform: %s", e.Value)
	}
}

// Is makes errors.Is(err, ErrUnsupported) true for any UnsupportedError.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Target identifies a published release build.
type Target struct {
	OS   string // "linux" or "darwin"
	Arch string // "amd64" or "arm64"
}

// String returns "os/arch".
func (t Target) String() string {
	return t.OS + "/" + t.Arch
}

// Info contains platform detection information.
type Info struct {
	Target
	OSRaw    string // OS name as reported by the host (e.g., "Linux")
	ArchRaw  string // machine name as reported by the host (e.g., "x86_64")
	Platform string // distro ID (Linux only, e.g., "ubuntu", "arch")
	Family   string // canonical family (e.g., "debian", "rhel", "arch")
	Version  string // distro version (Linux only, e.g., "22.04")
}

// Distro contains Linux distribution information.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != OSLinux || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSDarwin
}

// IsAMD64 returns true if the architecture is amd64.
func (i *Info) IsAMD64() bool {
	return i.Arch == ArchAMD64
}

// IsARM64 returns true if the architecture is arm64.
func (i *Info) IsARM64() bool {
	return i.Arch == ArchARM64
}

// IsAppleSilicon returns true if running on Apple Silicon (macOS + arm64).
func (i *Info) IsAppleSilicon() bool {
	return i.IsMacOS() && i.IsARM64()
}

// IsDebianFamily returns true if the Linux distribution is Debian-based.
func (i *Info) IsDebianFamily() bool {
	return i.IsLinux() && i.Family == FamilyDebian
}

// IsRHELFamily returns true if the Linux distribution is RHEL-based.
func (i *Info) IsRHELFamily() bool {
	return i.IsLinux() && i.Family == FamilyRHEL
}

// IsAlpine returns true if the Linux distribution is Alpine.
func (i *Info) IsAlpine() bool {
	return i.IsLinux() && i.Family == FamilyAlpine
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
