package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/komodo-env/komodo/internal/testutil"
)

func TestScrubEnv(t *testing.T) {
	t.Setenv("KOMODO_RELEASE", "stable-rhel8")
	t.Setenv("KOMODO_ROOT", "/prod/komodo")
	t.Setenv("_KOMODO_SESSION", "some-uuid")
	t.Setenv("_PRE_KOMODO_PATH", "/usr/bin")
	t.Setenv("_PRE_KOMODO_MANPATH", "")

	testutil.ScrubEnv(t)

	for _, name := range []string{
		"KOMODO_RELEASE",
		"KOMODO_ROOT",
		"_KOMODO_SESSION",
		"_PRE_KOMODO_PATH",
		"_PRE_KOMODO_MANPATH",
	} {
		if _, present := os.LookupEnv(name); present {
			t.Errorf("%s still present after ScrubEnv", name)
		}
	}
}

func TestScrubEnvRestores(t *testing.T) {
	t.Setenv("KOMODO_RELEASE", "stable-rhel8")

	t.Run("scrubbed", func(t *testing.T) {
		testutil.ScrubEnv(t)
		if _, present := os.LookupEnv("KOMODO_RELEASE"); present {
			t.Error("KOMODO_RELEASE still present inside scrubbed subtest")
		}
	})

	if got := os.Getenv("KOMODO_RELEASE"); got != "stable-rhel8" {
		t.Errorf("KOMODO_RELEASE = %q after subtest, want restored value", got)
	}
}

func TestSetupTestEnv(t *testing.T) {
	dir := testutil.SetupTestEnv(t)

	home := os.Getenv("HOME")
	if home == "" || !filepath.IsAbs(home) {
		t.Errorf("HOME = %q, want absolute temp path", home)
	}
	if _, err := os.Stat(os.Getenv("XDG_CONFIG_HOME")); err != nil {
		t.Errorf("XDG_CONFIG_HOME does not exist: %v", err)
	}

	site := os.Getenv("KOMODO_SITE_CONFIG")
	want := filepath.Join(dir, "site", "komodo.lua")
	if site != want {
		t.Errorf("KOMODO_SITE_CONFIG = %q, want %q", site, want)
	}
	if _, err := os.Stat(site); !os.IsNotExist(err) {
		t.Errorf("site config pre-created, Stat() error = %v", err)
	}
}

func TestSetupTestEnvIsolation(t *testing.T) {
	testutil.SetupTestEnv(t)
	home1 := os.Getenv("HOME")

	t.Run("subtest", func(t *testing.T) {
		testutil.SetupTestEnv(t)
		if home2 := os.Getenv("HOME"); home1 == home2 {
			t.Error("expected a fresh home per test context")
		}
	})
}

func TestWriteReleaseTree(t *testing.T) {
	root := t.TempDir()
	prefix := testutil.WriteReleaseTree(t, root, "stable-rhel8")

	if prefix != filepath.Join(root, "stable-rhel8") {
		t.Errorf("prefix = %q, want under root", prefix)
	}
	for _, sub := range []string{"bin", "lib", "lib64", "share/man"} {
		if _, err := os.Stat(filepath.Join(prefix, sub)); err != nil {
			t.Errorf("missing %s: %v", sub, err)
		}
	}
}
