package main

import (
	"context"
	"fmt"

	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/shell"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var shellName string
	var force, noBackup, dryRun bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Install the komodo hook in your shell's rc file",
		Long: `Add the hook line to the shell's rc file so every new shell defines
komodo_enable and komodo_disable. The shell is detected from the
environment unless --shell names one. The rc file is backed up before
the first change unless --no-backup.`,
		Args: noArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := shell.SetupOptions{Force: force, Backup: !noBackup, DryRun: dryRun}
			return runInit(cmd, shellName, opts)
		},
	}

	cmd.Flags().StringVar(&shellName, "shell", "", "shell to integrate: bash, zsh, csh or tcsh (default: detect)")
	cmd.Flags().BoolVar(&force, "force", false, "add the hook line even if one is already present")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the rc file backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing")
	return cmd
}

func runInit(cmd *cobra.Command, shellName string, opts shell.SetupOptions) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	settings, err := resolveSettings(ctx, flagOverrides{})
	if err != nil {
		return err
	}
	manager, err := shell.NewManager(shell.Config{Binary: komodoBinary(settings.Binary)})
	if err != nil {
		return err
	}

	var result *shell.SetupResult
	if shellName != "" {
		sh, perr := shell.Parse(shellName)
		if perr != nil {
			return fmt.Errorf("%w: %v", errUsage, perr)
		}
		result, err = manager.SetupIntegration(sh, opts)
	} else {
		result, err = manager.DetectAndSetup(opts)
	}
	if err != nil {
		return err
	}

	switch {
	case result.AlreadyPresent && !result.Added:
		logging.Info("hook already present in %s", result.RCFile)
	case opts.DryRun:
		logging.Info("would add to %s: %s", result.RCFile, result.HookLine)
	default:
		logging.Success("added komodo hook to %s", result.RCFile)
		logging.Info("restart your %s or run: source %s", result.Shell, result.RCFile)
	}
	if result.BackupPath != "" {
		logging.Info("previous rc file saved as %s", result.BackupPath)
	}
	return nil
}
