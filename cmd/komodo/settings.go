package main

import (
	"context"
	"os"

	"github.com/komodo-env/komodo/internal/config"
	"github.com/komodo-env/komodo/internal/logging"
)

// flagOverrides carries command-line values over the merged configuration.
// Empty fields leave the configured value in place.
type flagOverrides struct {
	Root    string
	Release string
}

// resolveSettings loads both configuration layers and applies the flag
// overrides on top: flags beat the user config, the user config beats the
// site config. A configured debug flag lowers the log level for the rest
// of the process.
func resolveSettings(ctx context.Context, fl flagOverrides) (*config.Settings, error) {
	settings, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if fl.Root != "" {
		settings.Root = fl.Root
	}
	if fl.Release != "" {
		settings.Release = fl.Release
	}
	if settings.Debug {
		logging.SetLevel("DEBUG")
	}
	return settings, nil
}

// komodoBinary returns the path emitted shell code re-invokes: the
// configured komodo_bin when set, the running executable otherwise. Sites
// pin komodo_bin so emitted code keeps working when the running executable
// is a staging copy.
func komodoBinary(configured string) string {
	if configured != "" {
		return configured
	}
	exe, err := os.Executable()
	if err != nil {
		return "komodo"
	}
	return exe
}
