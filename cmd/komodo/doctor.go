package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/komodo-env/komodo/internal/config"
	"github.com/komodo-env/komodo/internal/platform"
	"github.com/komodo-env/komodo/internal/release"
	"github.com/komodo-env/komodo/internal/shell"
	"github.com/komodo-env/komodo/internal/verify"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var rootDir string
	var verifyTrees bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the komodo installation",
		Long: `Check the pieces an activation depends on: platform support, site and
user configuration, the distribution root and its releases. With
--verify, additionally hash every release tree against its SHA256SUMS
manifest, checking the manifest signature when a keyring is configured.`,
		Args: noArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, rootDir, verifyTrees)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "distribution root holding the release trees")
	cmd.Flags().BoolVar(&verifyTrees, "verify", false, "verify release trees against their checksum manifests")
	return cmd
}

// diagnostics collects doctor findings. Warnings are informational; only
// fail findings affect the exit status.
type diagnostics struct {
	out      io.Writer
	failures int
}

func (d *diagnostics) ok(format string, v ...any) {
	fmt.Fprintf(d.out, "[ok]   %s\n", fmt.Sprintf(format, v...))
}

func (d *diagnostics) warn(format string, v ...any) {
	fmt.Fprintf(d.out, "[warn] %s\n", fmt.Sprintf(format, v...))
}

func (d *diagnostics) fail(format string, v ...any) {
	d.failures++
	fmt.Fprintf(d.out, "[FAIL] %s\n", fmt.Sprintf(format, v...))
}

func runDoctor(cmd *cobra.Command, rootDir string, verifyTrees bool) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	diag := &diagnostics{out: cmd.OutOrStdout()}

	checkPlatform(ctx, diag)
	major := checkSelector(ctx, diag)
	site := checkSiteConfig(ctx, diag)
	user := checkUserConfig(diag)
	checkShell(diag)

	settings := config.Merge(site, user)
	if rootDir != "" {
		settings.Root = rootDir
	}

	releases := checkRoot(diag, settings.Root, major)
	checkBinary(diag, settings.Binary)

	if verifyTrees {
		checkIntegrity(diag, settings, releases)
	}

	if diag.failures > 0 {
		return fmt.Errorf("doctor found %d problem(s)", diag.failures)
	}
	fmt.Fprintln(diag.out, "No problems found.")
	return nil
}

func checkPlatform(ctx context.Context, diag *diagnostics) {
	info, err := platform.Detect(ctx)
	if err != nil {
		diag.fail("platform: %v", err)
		return
	}
	if info.Platform != "" {
		diag.ok("platform: %s/%s (%s %s, %s family)",
			info.OS, info.Arch, info.Platform, info.Version, info.Family)
		return
	}
	diag.ok("platform: %s/%s", info.OS, info.Arch)
}

// checkSelector resolves the kernel string the way activate will and
// returns the supported major, or 0 when this host cannot activate
// anything.
func checkSelector(ctx context.Context, diag *diagnostics) int {
	kernel, err := kernelProbe.KernelRelease(ctx)
	if err != nil {
		diag.fail("kernel probe: %v", err)
		return 0
	}
	major, err := release.MajorFromKernel(kernel)
	if err != nil {
		diag.fail("release selector: kernel %q matches no supported platform (supported: RHEL %v)",
			kernel, release.SupportedMajors)
		return 0
	}
	diag.ok("release selector: RHEL %d (kernel %s)", major, kernel)
	return major
}

func checkSiteConfig(ctx context.Context, diag *diagnostics) *config.Site {
	path := config.SitePath()
	site, err := config.NewParser().ParseFile(ctx, path)
	switch {
	case errors.Is(err, config.ErrNotFound):
		diag.ok("site config: none (%s)", path)
		return nil
	case err != nil:
		diag.fail("site config: %s", config.FormatError(err, false))
		return nil
	}
	diag.ok("site config: %s", path)
	return site
}

func checkUserConfig(diag *diagnostics) *config.User {
	path, err := config.UserPath()
	if err != nil {
		diag.warn("user config: %v", err)
		return nil
	}
	user, err := config.LoadUser(path)
	switch {
	case errors.Is(err, config.ErrNotFound):
		diag.ok("user config: none (%s)", path)
		return nil
	case err != nil:
		diag.fail("user config: %v", err)
		return nil
	}
	diag.ok("user config: %s", path)
	return user
}

func checkShell(diag *diagnostics) {
	detection := shell.DetectShell()
	if !detection.Shell.IsValid() {
		diag.warn("shell: no supported shell detected (found %q)", detection.ShellPath)
		return
	}
	diag.ok("shell: %s (via %s)", detection.Shell, detection.Method)
}

// checkRoot reports on the distribution root and returns every matrix
// release found under it, for the integrity check.
func checkRoot(diag *diagnostics, root string, major int) []release.Descriptor {
	if root == "" {
		diag.fail("distribution root: not configured; set root in a config layer or pass --root")
		return nil
	}
	fi, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		diag.fail("distribution root: %s does not exist", root)
		return nil
	case err != nil:
		diag.fail("distribution root: %v", err)
		return nil
	case !fi.IsDir():
		diag.fail("distribution root: %s is not a directory", root)
		return nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		diag.fail("distribution root: %v", err)
		return nil
	}

	var all []release.Descriptor
	activatable := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		desc, err := release.ParseResolvedID(entry.Name())
		if err != nil {
			continue
		}
		all = append(all, desc)
		if desc.OSMajorVersion == major {
			activatable++
		}
	}

	switch {
	case len(all) == 0:
		diag.warn("distribution root: %s holds no matrix releases", root)
	case major == 0:
		diag.ok("distribution root: %s (%d matrix releases)", root, len(all))
	case activatable == 0:
		diag.warn("distribution root: %s has no releases for RHEL %d", root, major)
	default:
		diag.ok("distribution root: %s (%d releases for RHEL %d)", root, activatable, major)
	}
	return all
}

func checkBinary(diag *diagnostics, configured string) {
	bin := komodoBinary(configured)
	if configured == "" {
		diag.ok("binary: %s (this executable)", bin)
		return
	}
	if _, err := os.Stat(bin); err != nil {
		diag.fail("binary: configured komodo_bin is unusable: %v", err)
		return
	}
	diag.ok("binary: %s (komodo_bin)", bin)
}

// checkIntegrity verifies every matrix release tree. Trees without a
// manifest are reported but not failed; a site that does not ship
// SHA256SUMS has nothing to verify against.
func checkIntegrity(diag *diagnostics, settings *config.Settings, releases []release.Descriptor) {
	if len(releases) == 0 {
		return
	}
	if settings.Keyring == "" {
		diag.warn("integrity: no keyring configured; checking checksums only")
	}

	verifier := verify.NewVerifier(settings.Keyring)
	for _, desc := range releases {
		res, err := verifier.VerifyTree(desc.InstallPrefix(settings.Root))
		switch {
		case errors.Is(err, verify.ErrNoChecksums):
			diag.warn("integrity: %s has no %s; cannot verify", desc.ResolvedID, verify.ChecksumsName)
		case err != nil:
			diag.fail("integrity: %s: %v", desc.ResolvedID, err)
		case !res.OK():
			for _, failure := range res.Failures {
				diag.fail("integrity: %s: %v", desc.ResolvedID, failure)
			}
		case res.Signed:
			diag.ok("integrity: %s verified (%d files, signed by %s)",
				desc.ResolvedID, res.Checked, res.SignedBy)
		default:
			diag.ok("integrity: %s verified (%d files)", desc.ResolvedID, res.Checked)
		}
	}
}
