// Package platform probes the running host for the operating-system
// signals release resolution needs.
//
// The kernel release string drives the release selector, so the package
// centers on the Probe capability: a direct system-information query with
// an exec fallback, plus a fixed implementation for tests. Fuller platform
// detail (distribution, family) feeds the read-only table injected into
// the Lua site configuration.
package platform

import "context"

// Linux distribution family constants. Komodo releases only exist for the
// RHEL family, but site configurations branch on the others too (developer
// laptops, CI runners).
const (
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky, AlmaLinux, Oracle
	FamilyDebian  = "debian"  // Debian, Ubuntu
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyUnknown = "unknown" // everything else
)

// Info contains detected platform information.
type Info struct {
	OS       string // "linux", "darwin"
	Arch     string // GOARCH
	Kernel   string // raw kernel release, e.g. "4.18.0-477.27.1.el8_8.x86_64"
	Platform string // distro ID (Linux only, e.g. "rocky")
	Family   string // canonical family (e.g. "rhel")
	Version  string // distro version (Linux only, e.g. "8.8")
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsRHELFamily returns true if the distribution is RHEL-based.
func (i *Info) IsRHELFamily() bool {
	return i.OS == "linux" && i.Family == FamilyRHEL
}

// Probe supplies the raw kernel release string used for release
// resolution. Implementations must be safe for one-shot use from a CLI
// process; tests inject FixedProbe.
type Probe interface {
	KernelRelease(ctx context.Context) (string, error)
}
