package main

import (
	"strings"
	"testing"

	"github.com/komodo-env/komodo/internal/testutil"
)

func TestHookDefinesFunctions(t *testing.T) {
	testutil.SetupTestEnv(t)

	out, err := runCommand(t, "hook", "bash")
	if err != nil {
		t.Fatalf("hook: %v", err)
	}
	if !strings.Contains(out, "komodo_enable()") {
		t.Errorf("output missing komodo_enable:\n%s", out)
	}
	if !strings.Contains(out, "komodo_disable()") {
		t.Errorf("output missing komodo_disable:\n%s", out)
	}
	if !strings.Contains(out, "activate bash") {
		t.Errorf("hook must re-invoke activate for its own shell:\n%s", out)
	}
}

func TestHookCshUsesAliases(t *testing.T) {
	testutil.SetupTestEnv(t)

	out, err := runCommand(t, "hook", "tcsh")
	if err != nil {
		t.Fatalf("hook: %v", err)
	}
	if !strings.Contains(out, "alias komodo_enable") {
		t.Errorf("output missing enable alias:\n%s", out)
	}
	if !strings.Contains(out, "alias komodo_disable") {
		t.Errorf("output missing disable alias:\n%s", out)
	}
}

func TestHookUnknownShell(t *testing.T) {
	testutil.SetupTestEnv(t)

	_, err := runCommand(t, "hook", "fish")
	if got := exitCode(err); got != 2 {
		t.Errorf("exitCode = %d, want 2 (usage)", got)
	}
}

func TestHookUsesConfiguredBinary(t *testing.T) {
	testutil.SetupTestEnv(t)
	writeSiteConfig(t, "komodo = { komodo_bin = \"/opt/komodo/bin/komodo\" }\n")

	out, err := runCommand(t, "hook", "bash")
	if err != nil {
		t.Fatalf("hook: %v", err)
	}
	if !strings.Contains(out, "'/opt/komodo/bin/komodo' activate bash") {
		t.Errorf("configured binary not embedded:\n%s", out)
	}
}
