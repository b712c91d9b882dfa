package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/komodo-env/komodo/internal/platform"
	"github.com/spf13/cobra"
)

// commandTimeout bounds configuration loading and platform probing. motd
// run is exempt: announcement scripts may block on the user for as long as
// they like.
const commandTimeout = 30 * time.Second

// errUsage marks command-line mistakes: bad flags, wrong arity, unknown
// shell or command names. main translates it into exit code 2.
var errUsage = errors.New("usage error")

// kernelProbe supplies the kernel release string for release resolution.
// Tests swap in a platform.FixedProbe.
var kernelProbe platform.Probe = platform.Default()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "komodo",
		Short: "Activate versioned software environments",
		Long: `komodo switches the calling shell into a versioned software release
and restores it exactly afterwards. State-changing commands print shell
code on stdout for the shell to eval; run 'komodo init' once to install
the rc-file hook that defines komodo_enable and komodo_disable.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	cmd.AddCommand(
		newActivateCmd(),
		newDisableCmd(),
		newStatusCmd(),
		newListCmd(),
		newSwitchCmd(),
		newMotdCmd(),
		newDoctorCmd(),
		newHookCmd(),
		newInitCmd(),
		newUninitCmd(),
	)
	return cmd
}

// exitCode maps an Execute error to the process exit status: 0 success,
// 1 operational error, 2 usage error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}

// exactArgs is cobra.ExactArgs carrying the usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.ExactArgs(n))
}

// noArgs is cobra.NoArgs carrying the usage exit code.
func noArgs() cobra.PositionalArgs {
	return wrapArgs(cobra.NoArgs)
}

func wrapArgs(inner cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := inner(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}
