package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/platform"
)

// Kernel release strings as reported by the platforms komodo cares about.
const (
	kernelEL8     = "4.18.0-477.27.1.el8_8.x86_64"
	kernelEL9     = "5.14.0-362.8.1.el9_3.x86_64"
	kernelGeneric = "6.8.0-49-generic"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// runCommand executes the root command with args and returns captured
// stdout. Diagnostics go through the logging package and are discarded.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// withKernel pins the probed kernel release for one test.
func withKernel(t *testing.T, kernel string) {
	t.Helper()

	prev := kernelProbe
	kernelProbe = platform.FixedProbe{Kernel: kernel}
	t.Cleanup(func() { kernelProbe = prev })
}

// writeUserConfig writes the TOML user configuration inside the isolated
// config dir set up by testutil.SetupTestEnv.
func writeUserConfig(t *testing.T, content string) {
	t.Helper()

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "komodo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeSiteConfig writes the Lua site configuration at the path
// KOMODO_SITE_CONFIG points to.
func writeSiteConfig(t *testing.T, content string) {
	t.Helper()

	path := os.Getenv("KOMODO_SITE_CONFIG")
	if path == "" {
		t.Fatal("KOMODO_SITE_CONFIG not set; call testutil.SetupTestEnv first")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
