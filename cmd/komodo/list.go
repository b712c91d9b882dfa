package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/komodo-env/komodo/internal/logging"
	"github.com/komodo-env/komodo/internal/release"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List releases activatable on this host",
		Long: `List the matrix releases under the distribution root that were built
for this host's platform, one resolved id per line. Non-matrix directory
names and releases for other platforms are omitted.`,
		Args: noArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootDir)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "distribution root holding the release trees")
	return cmd
}

func runList(cmd *cobra.Command, rootDir string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	settings, err := resolveSettings(ctx, flagOverrides{Root: rootDir})
	if err != nil {
		return err
	}
	if settings.Root == "" {
		return errors.New("no distribution root; pass --root or configure root")
	}

	kernel, err := kernelProbe.KernelRelease(ctx)
	if err != nil {
		return fmt.Errorf("probe kernel release: %w", err)
	}
	major, err := release.MajorFromKernel(kernel)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(settings.Root)
	if err != nil {
		return fmt.Errorf("read distribution root: %w", err)
	}

	// ReadDir sorts lexically, so the output is already ordered.
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		desc, err := release.ParseResolvedID(entry.Name())
		if err != nil {
			continue
		}
		if desc.OSMajorVersion != major {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), desc.ResolvedID)
		count++
	}

	if count == 0 {
		logging.Info("no releases for RHEL %d under %s", major, settings.Root)
	}
	return nil
}
