package platform

import (
	"context"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// familyMap normalizes distribution family strings reported by the host
// into the canonical family constants.
var familyMap = map[string]string{
	"rhel":      FamilyRHEL,
	"centos":    FamilyRHEL,
	"rocky":     FamilyRHEL,
	"almalinux": FamilyRHEL,
	"ol":        FamilyRHEL,
	"oracle":    FamilyRHEL,
	"debian":    FamilyDebian,
	"ubuntu":    FamilyDebian,
	"fedora":    FamilyFedora,
	"suse":      FamilySUSE,
	"opensuse":  FamilySUSE,
}

// Detect gathers platform information for the site-configuration table.
//
// The kernel release comes from the default probe. On Linux, distribution
// details come from the OS release database; failures there degrade to
// OS/arch/kernel only, since most site configurations never branch on the
// distribution.
func Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	kernel, err := Default().KernelRelease(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Kernel probing can fail on exotic hosts; the selector will
		// report unsupported platform from the empty string.
	} else {
		info.Kernel = kernel
	}

	if runtime.GOOS == "linux" {
		platform, family, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return info, nil
		}

		platform = normalize(platform)
		if platform != "" {
			info.Platform = platform
			info.Family = mapFamily(family)
			info.Version = normalize(version)
		}
	}

	return info, nil
}

// normalize lowercases and trims host-reported identifiers.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapFamily maps a host-reported family string to a canonical constant.
func mapFamily(family string) string {
	if canonical, ok := familyMap[normalize(family)]; ok {
		return canonical
	}
	return FamilyUnknown
}
