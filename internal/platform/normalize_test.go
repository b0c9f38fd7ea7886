package platform

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		osName  string
		machine string
		want    Target
		wantErr bool
	}{
		{"Linux x86_64", "Linux", "x86_64", Target{OS: "linux", Arch: "amd64"}, false},
		{"Darwin arm64", "Darwin", "arm64", Target{OS: "darwin", Arch: "arm64"}, false},
		{"lowercase linux aarch64", "linux", "aarch64", Target{OS: "linux", Arch: "arm64"}, false},
		{"darwin amd64", "darwin", "amd64", Target{OS: "darwin", Arch: "amd64"}, false},
		{"windows unsupported", "Windows", "x86_64", Target{}, true},
		{"freebsd unsupported", "FreeBSD", "amd64", Target{}, true},
		{"i686 unsupported", "Linux", "i686", Target{}, true},
		{"armv7l unsupported", "Linux", "armv7l", Target{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.osName, tt.machine)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Errorf("error %v does not match ErrUnsupported", err)
				}
				var ue *UnsupportedError
				if !errors.As(err, &ue) {
					t.Errorf("error %T is not *UnsupportedError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeOS(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Darwin", "darwin", false},
		{"Linux", "linux", false},
		{"LINUX", "linux", false},
		{" linux ", "linux", false},
		{"SunOS", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := normalizeOS(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("normalizeOS() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("normalizeOS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"amd64", "amd64", "amd64", false},
		{"x86_64", "x86_64", "amd64", false},
		{"arm64", "arm64", "arm64", false},
		{"aarch64", "aarch64", "arm64", false},
		{"i386 unsupported", "i386", "", true},
		{"arm unsupported", "arm", "", true},
		{"unknown", "unknown", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeArch(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("normalizeArch() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("normalizeArch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnsupportedError_Message(t *testing.T) {
	tests := []struct {
		err  *UnsupportedError
		want string
	}{
		{&UnsupportedError{Kind: "os", Value: "Windows"}, `unsupported operating system: "Windows" (supported: linux, darwin)`},
		{&UnsupportedError{Kind: "arch", Value: "mips"}, `unsupported architecture: "mips" (supported: amd64, arm64)`},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestMapFamily(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debian", FamilyDebian},
		{"Ubuntu", FamilyDebian},
		{"rhel", FamilyRHEL},
		{"alpine", FamilyAlpine},
		{"  arch ", FamilyArch},
		{"plan9", FamilyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := mapFamily(tt.input); got != tt.want {
				t.Errorf("mapFamily(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
