// Package testutil isolates komodo tests from the host environment.
//
// Activation state travels through environment variables, so a developer
// running the suite inside an activated komodo session would otherwise
// leak that session into every test. The helpers here scrub the komodo
// variable surface and redirect config lookups into per-test temp
// directories.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// komodoVars is the fixed variable surface owned or consumed by komodo.
// Backup variables are handled by prefix instead, since their names
// depend on what was active when the snapshot was taken.
var komodoVars = []string{
	"KOMODO_RELEASE",
	"KOMODO_ROOT",
	"ERT_LSF_SERVER",
	"_KOMODO_SESSION",
	"KOMODO_DEBUG",
	"KOMODO_SITE_CONFIG",
}

const backupPrefix = "_PRE_KOMODO_"

// ScrubEnv removes every komodo variable from the process environment
// and restores the prior values when the test finishes.
func ScrubEnv(t *testing.T) {
	t.Helper()

	for _, name := range komodoVars {
		unsetWithRestore(t, name)
	}
	for _, kv := range os.Environ() {
		name, _, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(name, backupPrefix) {
			unsetWithRestore(t, name)
		}
	}
}

// SetupTestEnv scrubs the komodo variables and points HOME, the XDG
// config base and the site config lookup into a fresh temp directory, so
// tests never read the host's configs or write into the real home. It
// returns the temp directory; the site config path it points at is
// <dir>/site/komodo.lua, which tests may create or leave absent.
func SetupTestEnv(t *testing.T) string {
	t.Helper()
	ScrubEnv(t)

	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "home")
	configDir := filepath.Join(home, ".config")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		t.Fatalf("failed to create test config dir: %v", err)
	}

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", configDir)
	t.Setenv("KOMODO_SITE_CONFIG", filepath.Join(tmpDir, "site", "komodo.lua"))

	return tmpDir
}

// WriteReleaseTree creates a minimal release installation under root and
// returns its prefix. The layout matches what activation mutates into
// the tracked variables: bin, lib, lib64 and share/man.
func WriteReleaseTree(t *testing.T, root, id string) string {
	t.Helper()

	prefix := filepath.Join(root, id)
	for _, sub := range []string{"bin", "lib", "lib64", filepath.Join("share", "man")} {
		if err := os.MkdirAll(filepath.Join(prefix, sub), 0o755); err != nil {
			t.Fatalf("failed to create release tree %s: %v", prefix, err)
		}
	}
	return prefix
}

func unsetWithRestore(t *testing.T, name string) {
	t.Helper()

	prev, had := os.LookupEnv(name)
	if err := os.Unsetenv(name); err != nil {
		t.Fatalf("failed to unset %s: %v", name, err)
	}
	t.Cleanup(func() {
		if had {
			os.Setenv(name, prev)
		}
	})
}
