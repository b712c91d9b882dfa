package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// SysinfoProbe reads the kernel release through the host's system
// information interface. This is the direct query path.
type SysinfoProbe struct{}

// KernelRelease implements Probe.
func (SysinfoProbe) KernelRelease(ctx context.Context) (string, error) {
	kernel, err := host.KernelVersionWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("query kernel version: %w", err)
	}
	kernel = strings.TrimSpace(kernel)
	if kernel == "" {
		return "", fmt.Errorf("query kernel version: empty result")
	}
	return kernel, nil
}

// UnameProbe shells out to uname, the fallback the csh activator scripts
// historically relied on.
type UnameProbe struct {
	// Path overrides the uname binary; empty means "uname" from PATH.
	Path string
}

// KernelRelease implements Probe.
func (p UnameProbe) KernelRelease(ctx context.Context) (string, error) {
	path := p.Path
	if path == "" {
		path = "uname"
	}

	out, err := exec.CommandContext(ctx, path, "-r").Output()
	if err != nil {
		return "", fmt.Errorf("exec %s -r: %w", path, err)
	}

	kernel := strings.TrimSpace(string(out))
	if kernel == "" {
		return "", fmt.Errorf("exec %s -r: empty output", path)
	}
	return kernel, nil
}

// FixedProbe returns a canned kernel string. Tests use it to pin the OS
// signal deterministically.
type FixedProbe struct {
	Kernel string
	Err    error
}

// KernelRelease implements Probe.
func (p FixedProbe) KernelRelease(context.Context) (string, error) {
	return p.Kernel, p.Err
}

// FallbackProbe tries each probe in order and returns the first success.
type FallbackProbe []Probe

// KernelRelease implements Probe.
func (probes FallbackProbe) KernelRelease(ctx context.Context) (string, error) {
	var firstErr error
	for _, p := range probes {
		kernel, err := p.KernelRelease(ctx)
		if err == nil {
			return kernel, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no probes configured")
	}
	return "", fmt.Errorf("kernel release unavailable: %w", firstErr)
}

// Default returns the production probe: direct system query first, uname
// exec as fallback.
func Default() Probe {
	return FallbackProbe{SysinfoProbe{}, UnameProbe{}}
}
