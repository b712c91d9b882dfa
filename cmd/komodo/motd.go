package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/motd"
	"github.com/komodo-env/komodo/internal/session"
	"github.com/spf13/cobra"
)

func newMotdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "motd",
		Short: "Run or post message-of-the-day announcements",
	}
	cmd.AddCommand(newMotdRunCmd(), newMotdPostCmd())
	return cmd
}

func newMotdRunCmd() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute announcement scripts and print messages",
		Long: `Run every script under <root>/motd/scripts, then print every file
under <root>/motd/messages, in directory order. Both directories are
optional and silently skipped when absent. A failing script is reported
and the remaining entries still run; the exit status is non-zero if
anything failed.

The emitted activation code invokes this as its final step, with stdout
already wired to the terminal rather than to eval.`,
		Args: noArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMotdRun(cmd, rootDir)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "distribution root holding the motd tree")
	return cmd
}

func runMotdRun(cmd *cobra.Command, rootDir string) error {
	// No deadline here: announcement scripts may block on the user, and a
	// hanging script is supposed to hold the session open.
	ctx := cmd.Context()

	root := rootDir
	if root == "" {
		root = os.Getenv(session.VarRoot)
	}
	if root == "" {
		settings, err := resolveSettings(ctx, flagOverrides{})
		if err != nil {
			return err
		}
		root = settings.Root
	}
	if root == "" {
		return errors.New("no distribution root; pass --root or activate a release")
	}

	runner := motd.NewRunner(root)
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("motd run: %w", err)
	}
	return nil
}

func newMotdPostCmd() *cobra.Command {
	var dbPath, rootDir, releaseID string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish announcements from a YAML database",
		Long: `Read a YAML database mapping release ids (or "all") to messages and
scripts, and materialize them under <root>/motd for the runner to pick
up. Messages replace whatever their release posted before, so an entry
with no messages retracts earlier ones; scripts are copied executable.
With --release only that id plus "all" is posted.`,
		Args: noArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return fmt.Errorf("%w: --db is required", errUsage)
			}
			return runMotdPost(cmd, dbPath, rootDir, releaseID)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "YAML message database (required)")
	cmd.Flags().StringVar(&rootDir, "root", "", "distribution root holding the motd tree")
	cmd.Flags().StringVar(&releaseID, "release", "", "post only this release id (plus \"all\")")
	return cmd
}

func runMotdPost(cmd *cobra.Command, dbPath, rootDir, releaseID string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	settings, err := resolveSettings(ctx, flagOverrides{Root: rootDir})
	if err != nil {
		return err
	}
	if settings.Root == "" {
		return errors.New("no distribution root; pass --root or configure root")
	}

	db, err := motd.LoadDatabase(dbPath)
	if err != nil {
		return err
	}

	result, err := motd.Post(db, settings.Root, releaseID)
	if err != nil {
		return err
	}
	logging.Success("posted %d messages and %d scripts under %s",
		len(result.Messages), len(result.Scripts), filepath.Join(settings.Root, "motd"))
	return nil
}
