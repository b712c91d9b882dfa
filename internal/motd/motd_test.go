package motd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, root, name, body string) string {
	t.Helper()
	dir := filepath.Join(root, "motd", scriptsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func writeMessage(t *testing.T, root, name, text string) string {
	t.Helper()
	dir := filepath.Join(root, "motd", messagesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func newTestRunner(root string) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	r := NewRunner(root)
	r.Stdout = &stdout
	r.Stderr = &stderr
	return r, &stdout, &stderr
}

func TestRunnerMissingDirs(t *testing.T) {
	r, stdout, stderr := newTestRunner(t.TempDir())

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}

func TestRunnerScriptOrder(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "20-second", `echo second`)
	writeScript(t, root, "10-first", `echo first`)
	r, stdout, _ := newTestRunner(root)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	want := "first\nsecond\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunnerMessagesAfterScripts(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "00-hello", `echo from-script`)
	writeMessage(t, root, "00-stable-rhel8", "from-message\n")
	r, stdout, _ := newTestRunner(root)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	want := "from-script\nfrom-message\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunnerMessageOrder(t *testing.T) {
	root := t.TempDir()
	writeMessage(t, root, "01-later", "later\n")
	writeMessage(t, root, "00-sooner", "sooner\n")
	r, stdout, _ := newTestRunner(root)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	want := "sooner\nlater\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunnerScriptFailureContinues(t *testing.T) {
	root := t.TempDir()
	broken := writeScript(t, root, "00-broken", `exit 3`)
	writeScript(t, root, "10-ok", `echo still-here`)
	writeMessage(t, root, "00-notice", "notice\n")
	r, stdout, stderr := newTestRunner(root)

	err := r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want script failure")
	}

	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("Run() error = %v, want *ScriptError", err)
	}
	if scriptErr.Path != broken {
		t.Errorf("ScriptError.Path = %q, want %q", scriptErr.Path, broken)
	}

	// The failure must not suppress later scripts or the messages.
	want := "still-here\nnotice\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if !strings.Contains(stderr.String(), "motd script") {
		t.Errorf("stderr = %q, want script diagnostic", stderr.String())
	}
}

func TestRunnerNonExecutableScript(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "motd", scriptsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	plain := filepath.Join(dir, "00-plain")
	if err := os.WriteFile(plain, []byte("#!/bin/sh\necho nope\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	writeScript(t, root, "10-ok", `echo ran`)
	r, stdout, _ := newTestRunner(root)

	err := r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want permission failure")
	}
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("Run() error = %v, want *ScriptError", err)
	}
	if got := stdout.String(); got != "ran\n" {
		t.Errorf("stdout = %q, want %q", got, "ran\n")
	}
}

func TestRunnerSkipsSubdirectories(t *testing.T) {
	root := t.TempDir()
	for _, sub := range []string{scriptsDir, messagesDir} {
		if err := os.MkdirAll(filepath.Join(root, "motd", sub, "nested"), 0o755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
	}
	writeMessage(t, root, "00-note", "note\n")
	r, stdout, _ := newTestRunner(root)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if got := stdout.String(); got != "note\n" {
		t.Errorf("stdout = %q, want %q", got, "note\n")
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "00-hello", `echo hello`)
	r, _, _ := newTestRunner(root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx)
	if err == nil {
		t.Fatal("Run() error = nil, want context failure")
	}
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("Run() error = %v, want *ScriptError", err)
	}
}

func TestScriptErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ScriptError{Path: "/prod/komodo/motd/scripts/00-x", Err: inner}

	if !errors.Is(err, inner) {
		t.Errorf("errors.Is(err, inner) = false, want true")
	}
	want := "motd script /prod/komodo/motd/scripts/00-x: boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
