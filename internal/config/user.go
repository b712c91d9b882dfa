package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// UserPath returns the user configuration path, honoring XDG_CONFIG_HOME
// through the standard library.
func UserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, filepath.FromSlash(userConfigRelPath)), nil
}

// LoadUser parses the TOML user configuration at path. A missing file
// reports ErrNotFound so callers can treat the user layer as optional.
func LoadUser(path string) (*User, error) {
	var user User
	if _, err := toml.DecodeFile(path, &user); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("parse user config %s: %w", path, err)
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return &user, nil
}
