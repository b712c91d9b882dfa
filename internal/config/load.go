package config

import (
	"context"
	"errors"
	"os"
)

// ErrNotFound reports a configuration file that does not exist. Both
// layers are optional, so callers usually treat it as an empty layer.
var ErrNotFound = errors.New("config file not found")

// SitePath returns the site configuration path, honoring the
// KOMODO_SITE_CONFIG override.
func SitePath() string {
	if path := os.Getenv(SiteConfigVar); path != "" {
		return path
	}
	return DefaultSitePath
}

// Load assembles the effective settings: the site layer overlaid with the
// user layer. Missing files contribute nothing; malformed files fail.
// Command-line flags override the result at the command layer.
func Load(ctx context.Context) (*Settings, error) {
	return load(ctx, NewParser(), SitePath())
}

func load(ctx context.Context, parser *Parser, sitePath string) (*Settings, error) {
	site, err := parser.ParseFile(ctx, sitePath)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// Without a resolvable home directory there is no user layer.
	userPath, err := UserPath()
	if err != nil {
		return Merge(site, nil), nil
	}
	user, err := LoadUser(userPath)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return Merge(site, user), nil
}

// Merge overlays the user layer on the site layer; either may be nil.
// Load uses it internally, and doctor uses it to rebuild settings from
// layers it loaded and reported one by one.
func Merge(site *Site, user *User) *Settings {
	settings := &Settings{}
	if site != nil {
		settings.applySite(site)
	}
	if user != nil {
		settings.applyUser(user)
	}
	return settings
}

func (s *Settings) applySite(site *Site) {
	if site.Root != "" {
		s.Root = site.Root
	}
	if site.DefaultRelease != "" {
		s.Release = site.DefaultRelease
	}
	if site.KomodoBin != "" {
		s.Binary = site.KomodoBin
	}
	if site.Keyring != "" {
		s.Keyring = site.Keyring
	}
}

func (s *Settings) applyUser(user *User) {
	if user.Release != "" {
		s.Release = user.Release
	}
	if user.Root != "" {
		s.Root = user.Root
	}
	if user.Shell != "" {
		s.Shell = user.Shell
	}
	if user.Debug {
		s.Debug = true
	}
}
