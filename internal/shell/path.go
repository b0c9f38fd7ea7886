package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OnPath reports whether dir is one of the entries of pathEnv.
func OnPath(dir, pathEnv string) bool {
	want := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry != "" && filepath.Clean(entry) == want {
			return true
		}
	}
	return false
}

// PathHint returns the command that adds dir to PATH in the given shell.
func PathHint(shell ShellType, dir string) string {
	if shell == ShellFish {
		return "fish_add_path " + quote(dir)
	}
	return fmt.Sprintf("export PATH=%s:\"$PATH\"", quote(dir))
}

// RCFile returns the startup file the PATH hint belongs in, or "" for an
// unknown shell.
func RCFile(shell ShellType, home string) string {
	switch shell {
	case ShellBash:
		return filepath.Join(home, ".bashrc")
	case ShellZsh:
		return filepath.Join(home, ".zshrc")
	case ShellFish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return ""
	}
}

// Advice is the multi-line note printed when dir is missing from PATH.
func Advice(result *DetectionResult, dir string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is not on your PATH; add it with:\n", dir)
	fmt.Fprintf(&b, "  %s\n", PathHint(result.Shell, dir))

	if home, err := os.UserHomeDir(); err == nil {
		if rc := RCFile(result.Shell, home); rc != "" {
			fmt.Fprintf(&b, "to make it permanent, append that line to %s\n", rc)
		}
	}
	return b.String()
}

const shellSpecial = " \t\n'\"$;&|<>*?()[]{}#~!\\`"

// quote single-quotes s when it holds characters the shell would interpret.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, shellSpecial) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
