package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/komodo-env/komodo/internal/shell"
	"github.com/komodo-env/komodo/internal/testutil"
)

func rcPath(t *testing.T, name string) string {
	t.Helper()
	home := os.Getenv("HOME")
	if home == "" {
		t.Fatal("HOME unset; call testutil.SetupTestEnv first")
	}
	return filepath.Join(home, name)
}

func TestInitAddsHookLine(t *testing.T) {
	testutil.SetupTestEnv(t)

	if _, err := runCommand(t, "init", "--shell", "bash"); err != nil {
		t.Fatalf("init: %v", err)
	}

	content, err := os.ReadFile(rcPath(t, ".bashrc"))
	if err != nil {
		t.Fatalf("read rc file: %v", err)
	}
	if !strings.Contains(string(content), shell.ActivationMarker+" bash") {
		t.Errorf("rc file missing hook line:\n%s", content)
	}
	if !strings.Contains(string(content), shell.HookComment) {
		t.Errorf("rc file missing header comment:\n%s", content)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	testutil.SetupTestEnv(t)

	if _, err := runCommand(t, "init", "--shell", "zsh"); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := runCommand(t, "init", "--shell", "zsh"); err != nil {
		t.Fatalf("second init: %v", err)
	}

	content, err := os.ReadFile(rcPath(t, ".zshrc"))
	if err != nil {
		t.Fatalf("read rc file: %v", err)
	}
	if got := strings.Count(string(content), shell.ActivationMarker); got != 1 {
		t.Errorf("hook line count = %d, want 1\n%s", got, content)
	}
}

func TestInitBacksUpExistingRC(t *testing.T) {
	testutil.SetupTestEnv(t)

	rc := rcPath(t, ".bashrc")
	original := "alias ll='ls -l'\n"
	if err := os.WriteFile(rc, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "init", "--shell", "bash"); err != nil {
		t.Fatalf("init: %v", err)
	}

	backup, err := os.ReadFile(rc + shell.BackupSuffix)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != original {
		t.Errorf("backup = %q, want the pre-init content %q", backup, original)
	}

	content, err := os.ReadFile(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), original) {
		t.Errorf("existing rc content lost:\n%s", content)
	}
}

func TestInitNoBackup(t *testing.T) {
	testutil.SetupTestEnv(t)

	rc := rcPath(t, ".bashrc")
	if err := os.WriteFile(rc, []byte("# mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "init", "--shell", "bash", "--no-backup"); err != nil {
		t.Fatalf("init --no-backup: %v", err)
	}
	if _, err := os.Stat(rc + shell.BackupSuffix); !os.IsNotExist(err) {
		t.Errorf("backup written despite --no-backup, stat err = %v", err)
	}
}

func TestInitDryRun(t *testing.T) {
	testutil.SetupTestEnv(t)

	if _, err := runCommand(t, "init", "--shell", "bash", "--dry-run", "--no-backup"); err != nil {
		t.Fatalf("init --dry-run: %v", err)
	}

	content, err := os.ReadFile(rcPath(t, ".bashrc"))
	if err != nil {
		t.Fatalf("read rc file: %v", err)
	}
	if strings.Contains(string(content), shell.ActivationMarker) {
		t.Errorf("dry run must not install the hook:\n%s", content)
	}
}

func TestInitUnknownShell(t *testing.T) {
	testutil.SetupTestEnv(t)

	_, err := runCommand(t, "init", "--shell", "fish")
	if got := exitCode(err); got != 2 {
		t.Errorf("exitCode = %d, want 2 (usage)", got)
	}
}
