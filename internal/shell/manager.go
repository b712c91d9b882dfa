package shell

import "fmt"

// Manager orchestrates shell integration setup
type Manager struct {
	binary string
}

// NewManager creates a new shell manager
func NewManager(config Config) (*Manager, error) {
	if config.Binary == "" {
		return nil, fmt.Errorf("Binary is required")
	}

	return &Manager{
		binary: config.Binary,
	}, nil
}

// SetupIntegration installs the komodo hook line in the shell's rc file
func (m *Manager) SetupIntegration(shell ShellType, opts SetupOptions) (*SetupResult, error) {
	if err := ValidateShell(shell); err != nil {
		return nil, err
	}

	rcPath, err := GetRCFilePath(shell)
	if err != nil {
		return nil, fmt.Errorf("get RC file path: %w", err)
	}

	exists, err := RCFileExists(rcPath)
	if err != nil {
		return nil, fmt.Errorf("check RC file: %w", err)
	}

	if !exists {
		if err := CreateRCFile(rcPath); err != nil {
			return nil, fmt.Errorf("create RC file: %w", err)
		}
	}

	hasHook, err := HasActivationLine(rcPath)
	if err != nil {
		return nil, fmt.Errorf("check hook line: %w", err)
	}

	hookLine, err := HookLine(shell, m.binary)
	if err != nil {
		return nil, fmt.Errorf("generate hook line: %w", err)
	}

	// If already present and not forcing, return early
	if hasHook && !opts.Force {
		return &SetupResult{
			Shell:          shell,
			RCFile:         rcPath,
			Added:          false,
			AlreadyPresent: true,
			HookLine:       hookLine,
		}, nil
	}

	var backupPath string
	if opts.Backup {
		backupPath, err = BackupRCFile(rcPath)
		if err != nil {
			return nil, fmt.Errorf("backup RC file: %w", err)
		}
	}

	if !opts.DryRun {
		if err := AddActivationLine(rcPath, hookLine); err != nil {
			return nil, fmt.Errorf("add hook line: %w", err)
		}
	}

	return &SetupResult{
		Shell:          shell,
		RCFile:         rcPath,
		Added:          !opts.DryRun,
		AlreadyPresent: hasHook,
		BackupPath:     backupPath,
		HookLine:       hookLine,
	}, nil
}

// RemoveIntegration strips the komodo hook line from the shell's rc file
func (m *Manager) RemoveIntegration(shell ShellType, opts SetupOptions) (*RemoveResult, error) {
	if err := ValidateShell(shell); err != nil {
		return nil, err
	}

	rcPath, err := GetRCFilePath(shell)
	if err != nil {
		return nil, fmt.Errorf("get RC file path: %w", err)
	}

	var backupPath string
	if opts.Backup {
		if exists, _ := RCFileExists(rcPath); exists {
			backupPath, err = BackupRCFile(rcPath)
			if err != nil {
				return nil, fmt.Errorf("backup RC file: %w", err)
			}
		}
	}

	removed := false
	if !opts.DryRun {
		removed, err = RemoveActivationLine(rcPath)
		if err != nil {
			return nil, fmt.Errorf("remove hook line: %w", err)
		}
	}

	return &RemoveResult{
		Shell:      shell,
		RCFile:     rcPath,
		Removed:    removed,
		BackupPath: backupPath,
	}, nil
}

// DetectAndSetup detects the user's shell and sets up integration
func (m *Manager) DetectAndSetup(opts SetupOptions) (*SetupResult, error) {
	detection := DetectShell()

	if !detection.Shell.IsValid() {
		return nil, &UnsupportedShellError{Shell: detection.ShellPath}
	}

	return m.SetupIntegration(detection.Shell, opts)
}

// DetectAndRemove detects the user's shell and removes integration
func (m *Manager) DetectAndRemove(opts SetupOptions) (*RemoveResult, error) {
	detection := DetectShell()

	if !detection.Shell.IsValid() {
		return nil, &UnsupportedShellError{Shell: detection.ShellPath}
	}

	return m.RemoveIntegration(detection.Shell, opts)
}
