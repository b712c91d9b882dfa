package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/release"
	"github.com/komodo-env/komodo/internal/session"
	"github.com/komodo-env/komodo/internal/shell"
	"github.com/spf13/cobra"
)

func newActivateCmd() *cobra.Command {
	var releaseName, rootDir, custom string

	cmd := &cobra.Command{
		Use:   "activate <shell>",
		Short: "Emit shell code that activates a release",
		Long: `Resolve a release for this host and print the shell code that
switches the calling shell into it. Everything is checked before the
first line is printed, so on failure the output is empty and an eval of
it leaves the shell untouched.

Re-activating replaces the active release; the original pre-activation
environment is what a later disable restores.`,
		Example: "  eval \"$(komodo activate bash)\"\n" +
			"  eval \"`komodo activate tcsh --release testing`\"",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := shell.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return runActivate(cmd, sh, flagOverrides{Root: rootDir, Release: releaseName}, custom)
		},
	}

	cmd.Flags().StringVar(&releaseName, "release", "", "logical release name (default from configuration)")
	cmd.Flags().StringVar(&rootDir, "root", "", "distribution root holding the release trees")
	cmd.Flags().StringVar(&custom, "custom", "", "custom coordinate selecting a non-default build")
	return cmd
}

func runActivate(cmd *cobra.Command, sh shell.ShellType, fl flagOverrides, custom string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	settings, err := resolveSettings(ctx, fl)
	if err != nil {
		return err
	}
	if settings.Release == "" {
		return errors.New("no release named; pass --release or configure default_release")
	}
	if settings.Root == "" {
		return errors.New("no distribution root; pass --root or configure root")
	}

	kernel, err := kernelProbe.KernelRelease(ctx)
	if err != nil {
		return fmt.Errorf("probe kernel release: %w", err)
	}
	desc, err := release.Resolve(settings.Release, custom, kernel)
	if err != nil {
		return err
	}

	prefix := desc.InstallPrefix(settings.Root)
	if _, err := os.Stat(prefix); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("release %s is not installed under %s", desc.ResolvedID, settings.Root)
		}
		return fmt.Errorf("check release tree %s: %w", prefix, err)
	}

	renderer, err := shell.NewRenderer(sh, komodoBinary(settings.Binary))
	if err != nil {
		return err
	}

	p := session.FromEnviron(os.Environ(), sh.Profile())
	next, actions := session.Activate(p, desc, settings.Root)
	logging.Debug("activate %s under %s (session %s)", desc.ResolvedID, settings.Root, next.Active.ID)

	fmt.Fprint(cmd.OutOrStdout(), renderer.Render(actions))
	return nil
}
