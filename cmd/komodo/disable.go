package main

import (
	"fmt"
	"os"

	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/session"
	"github.com/komodo-env/komodo/internal/shell"
	"github.com/spf13/cobra"
)

func newDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <shell>",
		Short: "Emit shell code that restores the pre-activation environment",
		Long: `Print the shell code that restores every tracked variable to its
pre-activation state and clears the session identity. Without an active
session the output still clears the identity variables, so disable is
always safe to eval. Configuration is never consulted; disable works even
when the site config is broken.`,
		Example: "  eval \"$(komodo disable bash)\"",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := shell.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return runDisable(cmd, sh)
		},
	}
}

func runDisable(cmd *cobra.Command, sh shell.ShellType) error {
	// Disable actions never re-invoke the binary, so any renderer binary
	// path would do.
	renderer, err := shell.NewRenderer(sh, komodoBinary(""))
	if err != nil {
		return err
	}

	p := session.FromEnviron(os.Environ(), sh.Profile())
	if p.Active == nil {
		logging.Debug("no active session; clearing identity variables only")
	} else {
		logging.Debug("disable %s (session %s)", p.Active.Release.ResolvedID, p.Active.ID)
	}
	_, actions := session.Disable(p, false)

	fmt.Fprint(cmd.OutOrStdout(), renderer.Render(actions))
	return nil
}
