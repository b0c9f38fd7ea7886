package platform

import (
	"strings"
)

// familyMap maps distribution names to their canonical family names.
// This is used to normalize variations of family strings from gopsutil.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian, // gopsutil might return ubuntu as family
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// Resolve maps a host OS name and machine architecture onto a release Target.
// OS names are matched case-insensitively ("Linux", "Darwin"); architecture
// accepts the uname aliases x86_64 and aarch64.
func Resolve(osName, machine string) (Target, error) {
	goos, err := normalizeOS(osName)
	if err != nil {
		return Target{}, err
	}
	arch, err := normalizeArch(machine)
	if err != nil {
		return Target{}, err
	}
	return Target{OS: goos, Arch: arch}, nil
}

// normalizeOS converts a host OS name to a release OS name.
func normalizeOS(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linux":
		return OSLinux, nil
	case "darwin":
		return OSDarwin, nil
	default:
		return "", &UnsupportedError{Kind: "os", Value: name}
	}
}

// normalizeArch converts machine names to normalized architecture names.
func normalizeArch(arch string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "amd64", "x86_64":
		return ArchAMD64, nil
	case "arm64", "aarch64":
		return ArchARM64, nil
	default:
		return "", &UnsupportedError{Kind: "arch", Value: arch}
	}
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}
