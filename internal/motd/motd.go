// Package motd runs and publishes message-of-the-day announcements for a
// software distribution root.
//
// A distribution keeps announcements under <root>/motd: executable hooks
// in motd/scripts and plain-text notices in motd/messages. The runner
// executes every script in lexical order and then prints every message,
// exactly what the emitted activation code triggers as its final step.
// Both directories are optional; a root without them activates silently.
//
// The poster side maintains that tree from a YAML database, so
// distribution operators can publish notices per release without touching
// the root by hand.
package motd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Subdirectories of <root>/motd.
const (
	scriptsDir  = "scripts"
	messagesDir = "messages"
)

// ScriptError reports a motd script that could not be run or exited
// non-zero. The runner keeps going after one, so a single broken hook
// cannot suppress the announcements behind it.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("motd script %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Runner executes announcement scripts and prints messages for one root.
type Runner struct {
	// Root is the distribution root, e.g. "/prod/komodo".
	Root string

	// Stdout receives script output and message contents. Defaults to
	// os.Stdout: the runner is invoked by already-evaluated shell code,
	// so its stdout goes to the user's terminal, not into eval.
	Stdout io.Writer

	// Stderr receives script diagnostics. Defaults to os.Stderr.
	Stderr io.Writer
}

// NewRunner creates a runner for the given distribution root.
func NewRunner(root string) *Runner {
	return &Runner{
		Root:   root,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes <root>/motd/scripts in lexical order, then prints the
// contents of <root>/motd/messages in lexical order. Missing directories
// are skipped silently. Entries that cannot be run or read surface as
// errors but do not stop the remaining entries; the joined error reports
// everything that failed.
func (r *Runner) Run(ctx context.Context) error {
	return errors.Join(r.runScripts(ctx), r.printMessages())
}

func (r *Runner) runScripts(ctx context.Context) error {
	dir := filepath.Join(r.Root, "motd", scriptsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read motd scripts: %w", err)
	}

	var failures []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		cmd := exec.CommandContext(ctx, path)
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
		if err := cmd.Run(); err != nil {
			scriptErr := &ScriptError{Path: path, Err: err}
			fmt.Fprintln(r.Stderr, scriptErr)
			failures = append(failures, scriptErr)
		}
	}
	return errors.Join(failures...)
}

func (r *Runner) printMessages() error {
	dir := filepath.Join(r.Root, "motd", messagesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read motd messages: %w", err)
	}

	var failures []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			failures = append(failures, fmt.Errorf("read motd message: %w", err))
			continue
		}
		if _, err := r.Stdout.Write(data); err != nil {
			failures = append(failures, fmt.Errorf("print motd message: %w", err))
		}
	}
	return errors.Join(failures...)
}
