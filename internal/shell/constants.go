package shell

// Activation and backup markers
const (
	// ActivationMarker is the string that identifies a komodo hook line
	ActivationMarker = "komodo hook"

	// HookComment is the header comment written above the hook line
	HookComment = "# Komodo software distribution"

	// BackupSuffix is the suffix for rc file backups
	BackupSuffix = ".komodo-backup"
)
