package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/komodo-env/komodo/internal/git"
	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/switchgen"
	"github.com/spf13/cobra"
)

func newSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Manage activator switch scripts",
	}
	cmd.AddCommand(newSwitchCreateCmd())
	return cmd
}

func newSwitchCreateCmd() *cobra.Command {
	var rootDir, binPath string
	var commit bool

	cmd := &cobra.Command{
		Use:   "create <release>",
		Short: "Write the enable scripts for a matrix release",
		Long: `Write <root>/<name>/enable and <root>/<name>/enable.csh for a release
named <base>-rhel<N>. Sourcing a script activates the build of <name>
made for the sourcing host, so one path serves every platform. Names
without a -rhel<N> part are non-matrix releases and are skipped.`,
		Example: "  komodo switch create 2024.03.01-rhel8 --commit",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitchCreate(cmd, args[0], rootDir, binPath, commit)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "distribution root holding the release trees")
	cmd.Flags().StringVar(&binPath, "bin", "", "komodo binary the scripts invoke (default: this executable)")
	cmd.Flags().BoolVar(&commit, "commit", false, "stage and commit the scripts when the root is a git repository")
	return cmd
}

func runSwitchCreate(cmd *cobra.Command, releaseID, rootDir, binPath string, commit bool) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	settings, err := resolveSettings(ctx, flagOverrides{Root: rootDir})
	if err != nil {
		return err
	}
	if settings.Root == "" {
		return errors.New("no distribution root; pass --root or configure root")
	}

	bin := binPath
	if bin == "" {
		bin = komodoBinary(settings.Binary)
	}

	res, err := switchgen.Create(settings.Root, releaseID, bin)
	if err != nil {
		return err
	}
	if res.Skipped {
		logging.Info("%s is not a matrix release; no switch scripts written", res.Name)
		return nil
	}
	logging.Success("wrote %s and %s", res.BashPath, res.CshPath)

	if !commit {
		return nil
	}
	hash, err := switchgen.CommitScripts(ctx, settings.Root, res)
	if err != nil {
		if errors.Is(err, git.ErrNotARepo) {
			logging.Warn("%s is not a git repository; scripts left uncommitted", settings.Root)
			return nil
		}
		return fmt.Errorf("commit switch scripts: %w", err)
	}
	logging.Success("committed %s", hash[:8])
	return nil
}
