package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// DetectShell detects the user's shell using multiple methods
func DetectShell() *DetectionResult {
	// Method 1: Try $SHELL environment variable (most reliable)
	if shell := os.Getenv("SHELL"); shell != "" {
		shellType := parseShellFromPath(shell)
		if shellType.IsValid() {
			return &DetectionResult{
				Shell:      shellType,
				Method:     "$SHELL environment variable",
				ShellPath:  shell,
				Confidence: "high",
			}
		}
	}

	// Method 2: Try parent process (fallback)
	if shellType, shellPath := detectFromParentProcess(); shellType.IsValid() {
		return &DetectionResult{
			Shell:      shellType,
			Method:     "parent process",
			ShellPath:  shellPath,
			Confidence: "medium",
		}
	}

	// Method 3: Could not detect shell
	return &DetectionResult{
		Shell:      ShellUnknown,
		Method:     "detection failed",
		ShellPath:  "",
		Confidence: "none",
	}
}

// parseShellFromPath extracts the shell type from a shell binary path
// Examples:
//   - /bin/bash -> bash
//   - /usr/bin/zsh -> zsh
//   - /bin/tcsh -> tcsh
func parseShellFromPath(shellPath string) ShellType {
	baseName := strings.ToLower(filepath.Base(shellPath))

	shellType := ShellType(baseName)
	if shellType.IsValid() {
		return shellType
	}
	return ShellUnknown
}

// detectFromParentProcess inspects the immediate parent process, which is
// the interactive shell itself when komodo runs from a prompt. Only the
// direct parent is consulted; walking further up would misfire on login
// shells wrapping unrelated tools.
func detectFromParentProcess() (ShellType, string) {
	parent, err := process.NewProcess(int32(os.Getppid()))
	if err != nil {
		return ShellUnknown, ""
	}

	name, err := parent.Name()
	if err != nil {
		return ShellUnknown, ""
	}

	shellType := parseShellFromPath(name)
	if !shellType.IsValid() {
		return ShellUnknown, ""
	}

	shellPath, err := parent.Exe()
	if err != nil {
		shellPath = name
	}
	return shellType, shellPath
}

// ValidateShell validates that a shell type is supported
func ValidateShell(shell ShellType) error {
	if !shell.IsValid() {
		return &UnsupportedShellError{Shell: shell.String()}
	}
	return nil
}

// GetSupportedShells returns a list of supported shells
func GetSupportedShells() []ShellType {
	return []ShellType{ShellBash, ShellZsh, ShellCsh, ShellTcsh}
}
