package shell

import (
	"fmt"
	"strings"

	"github.com/komodo-env/komodo/internal/session"
)

// ShellType represents a supported shell
type ShellType string

const (
	// ShellBash represents the Bash shell
	ShellBash ShellType = "bash"
	// ShellZsh represents the Z shell
	ShellZsh ShellType = "zsh"
	// ShellCsh represents the C shell
	ShellCsh ShellType = "csh"
	// ShellTcsh represents the TENEX C shell
	ShellTcsh ShellType = "tcsh"
	// ShellUnknown represents an unknown or unsupported shell
	ShellUnknown ShellType = "unknown"
)

// Family groups shells by dialect. Activation semantics are identical per
// family; only the emitted syntax differs, and the two renderers must stay
// in lock-step because the same users move between both.
type Family string

const (
	// FamilyBash covers bash and zsh.
	FamilyBash Family = "bash"
	// FamilyCsh covers csh and tcsh.
	FamilyCsh Family = "csh"
)

// String returns the string representation of the shell type
func (s ShellType) String() string {
	return string(s)
}

// IsValid returns true if the shell type is supported
func (s ShellType) IsValid() bool {
	switch s {
	case ShellBash, ShellZsh, ShellCsh, ShellTcsh:
		return true
	default:
		return false
	}
}

// Family returns the dialect family of the shell.
func (s ShellType) Family() Family {
	switch s {
	case ShellCsh, ShellTcsh:
		return FamilyCsh
	default:
		return FamilyBash
	}
}

// Profile returns the session profile for the shell's family.
func (s ShellType) Profile() session.Profile {
	if s.Family() == FamilyCsh {
		return session.CshProfile
	}
	return session.BashProfile
}

// Parse maps a command line argument to a ShellType.
func Parse(name string) (ShellType, error) {
	st := ShellType(strings.ToLower(name))
	if !st.IsValid() {
		return ShellUnknown, &UnsupportedShellError{Shell: name}
	}
	return st, nil
}

// Config holds configuration for the shell manager
type Config struct {
	// Binary is the absolute path of the komodo executable referenced by
	// the installed hook line.
	Binary string
}

// SetupOptions holds options for shell integration setup
type SetupOptions struct {
	// Force skips duplicate detection and adds the hook line unconditionally
	Force bool
	// Backup creates a backup of the rc file before modification
	Backup bool
	// DryRun shows what would be done without making changes
	DryRun bool
}

// SetupResult contains the result of shell integration setup
type SetupResult struct {
	// Shell is the detected or specified shell type
	Shell ShellType
	// RCFile is the path to the shell's configuration file
	RCFile string
	// Added indicates if the hook line was added
	Added bool
	// AlreadyPresent indicates if the hook was already configured
	AlreadyPresent bool
	// BackupPath is the path to the backup file (if created)
	BackupPath string
	// HookLine is the line that was added
	HookLine string
}

// RemoveResult contains the result of shell integration removal
type RemoveResult struct {
	// Shell is the detected or specified shell type
	Shell ShellType
	// RCFile is the path to the shell's configuration file
	RCFile string
	// Removed indicates if a hook line was found and removed
	Removed bool
	// BackupPath is the path to the backup file (if created)
	BackupPath string
}

// DetectionResult contains the result of shell detection
type DetectionResult struct {
	// Shell is the detected shell type
	Shell ShellType
	// Method describes how the shell was detected
	Method string
	// ShellPath is the filesystem path to the shell binary
	ShellPath string
	// Confidence is the confidence level (high, medium, low)
	Confidence string
}

// UnsupportedShellError represents an unsupported shell error
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell: %s (supported: bash, zsh, csh, tcsh)", e.Shell)
}

// RCFileError represents an error with shell rc file operations
type RCFileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RCFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rc file error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("rc file error (%s): %s", e.Path, e.Message)
}

func (e *RCFileError) Unwrap() error {
	return e.Cause
}
