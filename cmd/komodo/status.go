package main

import (
	"fmt"
	"os"

	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/session"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active release, if any",
		Args:  noArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	// The profile only affects prompt handling, which status never reads.
	p := session.FromEnviron(os.Environ(), session.BashProfile)

	out := cmd.OutOrStdout()
	if p.Active == nil {
		fmt.Fprintln(out, "No komodo release is active.")
		return nil
	}

	s := p.Active
	fmt.Fprintf(out, "Release: %s\n", s.Release.ResolvedID)
	fmt.Fprintf(out, "Root:    %s\n", s.Root)
	fmt.Fprintf(out, "Prefix:  %s\n", s.Prefix())
	fmt.Fprintf(out, "Session: %s\n", s.ID)

	for _, name := range []string{session.VarPath, session.VarManpath, session.VarLdLibraryPath} {
		if v := s.Snapshot[name]; v.Present {
			logging.Debug("saved %s=%q", name, v.Value)
		} else {
			logging.Debug("saved %s: was unset", name)
		}
	}
	return nil
}
