package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// DetectShell detects the user's shell from $SHELL, then from the parent
// process. Detection never fails; an unrecognized shell is ShellUnknown.
func DetectShell(ctx context.Context) *DetectionResult {
	return detect(os.Getenv("SHELL"), func() (string, error) {
		return parentProcessName(ctx)
	})
}

func detect(shellEnv string, parentName func() (string, error)) *DetectionResult {
	if shellEnv != "" {
		if shellType := parseShellFromPath(shellEnv); shellType.IsValid() {
			return &DetectionResult{
				Shell:      shellType,
				Method:     "$SHELL environment variable",
				ShellPath:  shellEnv,
				Confidence: "high",
			}
		}
	}

	if parentName != nil {
		if name, err := parentName(); err == nil {
			if shellType := parseShellFromPath(name); shellType.IsValid() {
				return &DetectionResult{
					Shell:      shellType,
					Method:     "parent process",
					ShellPath:  name,
					Confidence: "medium",
				}
			}
		}
	}

	return &DetectionResult{
		Shell:      ShellUnknown,
		Method:     "detection failed",
		Confidence: "none",
	}
}

// parseShellFromPath extracts the shell type from a shell binary path
// Examples:
//   - /bin/bash -> bash
//   - /usr/bin/zsh -> zsh
//   - -zsh (login shell) -> zsh
func parseShellFromPath(shellPath string) ShellType {
	baseName := strings.ToLower(filepath.Base(shellPath))
	baseName = strings.TrimPrefix(baseName, "-")

	switch baseName {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	default:
		return ShellUnknown
	}
}

func parentProcessName(ctx context.Context) (string, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getppid()))
	if err != nil {
		return "", err
	}
	return proc.NameWithContext(ctx)
}
