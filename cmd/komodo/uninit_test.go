package main

import (
	"os"
	"strings"
	"testing"

	"github.com/komodo-env/komodo/internal/shell"
	"github.com/komodo-env/komodo/internal/testutil"
)

func TestUninitRemovesHookLine(t *testing.T) {
	testutil.SetupTestEnv(t)

	rc := rcPath(t, ".bashrc")
	if err := os.WriteFile(rc, []byte("alias ll='ls -l'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "init", "--shell", "bash"); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := runCommand(t, "uninit", "--shell", "bash"); err != nil {
		t.Fatalf("uninit: %v", err)
	}

	content, err := os.ReadFile(rc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), shell.ActivationMarker) {
		t.Errorf("hook line still present:\n%s", content)
	}
	if strings.Contains(string(content), shell.HookComment) {
		t.Errorf("header comment still present:\n%s", content)
	}
	if !strings.Contains(string(content), "alias ll='ls -l'") {
		t.Errorf("unrelated content lost:\n%s", content)
	}
}

func TestUninitWithoutHook(t *testing.T) {
	testutil.SetupTestEnv(t)

	rc := rcPath(t, ".bashrc")
	if err := os.WriteFile(rc, []byte("# nothing komodo here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "uninit", "--shell", "bash", "--no-backup"); err != nil {
		t.Fatalf("uninit without a hook: %v", err)
	}
}

func TestUninitMissingRCFile(t *testing.T) {
	testutil.SetupTestEnv(t)

	if _, err := runCommand(t, "uninit", "--shell", "tcsh", "--no-backup"); err != nil {
		t.Fatalf("uninit with no rc file: %v", err)
	}
}

func TestUninitDryRun(t *testing.T) {
	testutil.SetupTestEnv(t)

	if _, err := runCommand(t, "init", "--shell", "bash"); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := runCommand(t, "uninit", "--shell", "bash", "--dry-run", "--no-backup"); err != nil {
		t.Fatalf("uninit --dry-run: %v", err)
	}

	content, err := os.ReadFile(rcPath(t, ".bashrc"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), shell.ActivationMarker) {
		t.Errorf("dry run must leave the hook installed:\n%s", content)
	}
}
