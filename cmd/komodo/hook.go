package main

import (
	"context"
	"fmt"

	"github.com/komodo-env/komodo/internal/shell"
	"github.com/spf13/cobra"
)

func newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook <shell>",
		Short: "Print the komodo_enable and komodo_disable helpers",
		Long: `Print the shell functions (bash family) or aliases (csh family) that
wrap activate and disable in the eval their output needs. The rc-file
line installed by 'komodo init' evals this command on shell startup.`,
		Example: "  eval \"$(komodo hook bash)\"",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := shell.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return runHook(cmd, sh)
		},
	}
}

func runHook(cmd *cobra.Command, sh shell.ShellType) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	settings, err := resolveSettings(ctx, flagOverrides{})
	if err != nil {
		return err
	}

	text, err := shell.Hook(sh, komodoBinary(settings.Binary))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
