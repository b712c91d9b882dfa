package main

import (
	"fmt"

	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/shell"
	"github.com/spf13/cobra"
)

func newUninitCmd() *cobra.Command {
	var shellName string
	var noBackup, dryRun bool

	cmd := &cobra.Command{
		Use:   "uninit",
		Short: "Remove the komodo hook from your shell's rc file",
		Long: `Strip the hook line 'komodo init' added from the shell's rc file.
Already-running shells keep their helpers until restarted.`,
		Args: noArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := shell.SetupOptions{Backup: !noBackup, DryRun: dryRun}
			return runUninit(shellName, opts)
		},
	}

	cmd.Flags().StringVar(&shellName, "shell", "", "shell to clean up: bash, zsh, csh or tcsh (default: detect)")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the rc file backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing")
	return cmd
}

func runUninit(shellName string, opts shell.SetupOptions) error {
	// The manager needs a binary path to construct, but removal never
	// emits one.
	manager, err := shell.NewManager(shell.Config{Binary: komodoBinary("")})
	if err != nil {
		return err
	}

	var result *shell.RemoveResult
	if shellName != "" {
		sh, perr := shell.Parse(shellName)
		if perr != nil {
			return fmt.Errorf("%w: %v", errUsage, perr)
		}
		result, err = manager.RemoveIntegration(sh, opts)
	} else {
		result, err = manager.DetectAndRemove(opts)
	}
	if err != nil {
		return err
	}

	switch {
	case opts.DryRun:
		logging.Info("would remove the komodo hook from %s", result.RCFile)
	case result.Removed:
		logging.Success("removed komodo hook from %s", result.RCFile)
	default:
		logging.Info("no komodo hook in %s", result.RCFile)
	}
	if result.BackupPath != "" {
		logging.Info("previous rc file saved as %s", result.BackupPath)
	}
	return nil
}
