package config

import (
	"github.com/komodo-env/komodo/internal/validate"
)

// Site is the machine-wide configuration, parsed from the Lua site file.
// All fields are optional; an empty Site contributes nothing.
type Site struct {
	// Root of the software distribution, e.g. "/prod/komodo".
	Root string `json:"root,omitempty"`

	// DefaultRelease is the logical release activated when the caller
	// names none, e.g. "stable".
	DefaultRelease string `json:"default_release,omitempty"`

	// KomodoBin is the komodo binary path the emitted shell code should
	// call back into. Defaults to the running executable when empty.
	KomodoBin string `json:"komodo_bin,omitempty"`

	// Keyring is a directory of armored public keys used to verify
	// release signatures.
	Keyring string `json:"keyring,omitempty"`
}

// User is the per-user configuration from config.toml. All fields are
// optional and override the site layer.
type User struct {
	Release string `toml:"release"`
	Root    string `toml:"root"`
	Shell   string `toml:"shell"`
	Debug   bool   `toml:"debug"`
}

// Settings is the merged configuration commands consume. Zero values mean
// the key was configured nowhere; flags override at the command layer.
type Settings struct {
	Root    string
	Release string
	Shell   string
	Binary  string
	Keyring string
	Debug   bool
}

// Validate checks the site layer. Paths must be absolute because they are
// spliced into emitted shell code that runs with an arbitrary working
// directory.
func (s *Site) Validate() error {
	if s.Root != "" {
		if err := validate.AbsolutePath(s.Root, "root"); err != nil {
			return &ValidationError{Field: "root", Message: err.Error()}
		}
	}
	if s.DefaultRelease != "" {
		if err := validate.ReleaseNameFormat(s.DefaultRelease); err != nil {
			return &ValidationError{Field: "default_release", Message: err.Error()}
		}
	}
	if s.KomodoBin != "" {
		if err := validate.AbsolutePath(s.KomodoBin, "komodo_bin"); err != nil {
			return &ValidationError{Field: "komodo_bin", Message: err.Error()}
		}
	}
	if s.Keyring != "" {
		if err := validate.AbsolutePath(s.Keyring, "keyring"); err != nil {
			return &ValidationError{Field: "keyring", Message: err.Error()}
		}
	}
	return nil
}

// Validate checks the user layer.
func (u *User) Validate() error {
	if u.Release != "" {
		if err := validate.ReleaseNameFormat(u.Release); err != nil {
			return &ValidationError{Field: "release", Message: err.Error()}
		}
	}
	if u.Root != "" {
		if err := validate.AbsolutePath(u.Root, "root"); err != nil {
			return &ValidationError{Field: "root", Message: err.Error()}
		}
	}
	if u.Shell != "" {
		if err := validate.ValidateField(u.Shell, "oneof=bash zsh csh tcsh"); err != nil {
			return &ValidationError{Field: "shell", Message: "must be one of bash, zsh, csh, tcsh"}
		}
	}
	return nil
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}
