// Package release resolves logical release names against the running
// platform.
//
// Komodo releases are built per Enterprise Linux major version. A logical
// name like "unstable" resolves to a concrete id like "unstable-rhel8" by
// inspecting the kernel release string, and that id names the installation
// tree under the release root. Resolution fails closed: on a platform no
// release is built for, callers get ErrUnsupportedPlatform and must not
// touch any environment state.
package release

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// OSFamilyRHEL is the only family komodo releases are built for.
const OSFamilyRHEL = "rhel"

// SupportedMajors lists the Enterprise Linux major versions releases are
// built for, in preference order. The selector, the switch generator and
// doctor all share this table.
var SupportedMajors = []int{8, 9}

// ErrUnsupportedPlatform is returned when the kernel release string carries
// no supported Enterprise Linux marker.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrNotMatrixRelease is returned by ParseResolvedID for names without a
// "-rhel<N>" part, such as ad-hoc builds that exist for one platform only.
var ErrNotMatrixRelease = errors.New("not a matrix release")

var errEmptyName = errors.New("release name must not be empty")

// Descriptor identifies one resolved release variant.
type Descriptor struct {
	LogicalName      string
	CustomCoordinate string
	OSFamily         string
	OSMajorVersion   int
	ResolvedID       string
}

// InstallPrefix returns the installation tree for d under root.
func (d Descriptor) InstallPrefix(root string) string {
	return filepath.Join(root, d.ResolvedID)
}

// MajorFromKernel extracts the Enterprise Linux major version from a kernel
// release string such as "4.18.0-477.27.1.el8_8.x86_64". Strings without a
// supported "el<N>" token fail with ErrUnsupportedPlatform.
func MajorFromKernel(kernel string) (int, error) {
	for _, major := range SupportedMajors {
		if strings.Contains(kernel, fmt.Sprintf("el%d", major)) {
			return major, nil
		}
	}
	return 0, fmt.Errorf("kernel %q: %w", kernel, ErrUnsupportedPlatform)
}

// IsSupported reports whether releases are built for the given major.
func IsSupported(major int) bool {
	for _, m := range SupportedMajors {
		if m == major {
			return true
		}
	}
	return false
}

// ComposeID builds the concrete release id from its parts.
func ComposeID(logicalName string, major int, customCoordinate string) string {
	id := fmt.Sprintf("%s-%s%d", logicalName, OSFamilyRHEL, major)
	if customCoordinate != "" {
		id += "-" + customCoordinate
	}
	return id
}

// Resolve maps a logical release name and the running platform's kernel
// string to a concrete release variant. The custom coordinate, when given,
// selects a non-default build of the release.
func Resolve(logicalName, customCoordinate, kernel string) (Descriptor, error) {
	if logicalName == "" {
		return Descriptor{}, errEmptyName
	}

	major, err := MajorFromKernel(kernel)
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		LogicalName:      logicalName,
		CustomCoordinate: customCoordinate,
		OSFamily:         OSFamilyRHEL,
		OSMajorVersion:   major,
		ResolvedID:       ComposeID(logicalName, major, customCoordinate),
	}, nil
}

// ParseResolvedID decomposes a concrete release id back into a Descriptor.
// "2024.01.00-py311-rhel8" yields logical name "2024.01.00-py311" and major
// 8; a trailing "-<coordinate>" after the rhel part becomes the custom
// coordinate. The last "-rhel<N>" occurrence wins, so logical names may
// themselves contain hyphens. Names without any "-rhel<N>" part return
// ErrNotMatrixRelease.
func ParseResolvedID(id string) (Descriptor, error) {
	marker := "-" + OSFamilyRHEL
	idx := strings.LastIndex(id, marker)
	if idx <= 0 {
		return Descriptor{}, fmt.Errorf("release %q: %w", id, ErrNotMatrixRelease)
	}

	rest := id[idx+len(marker):]
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return Descriptor{}, fmt.Errorf("release %q: %w", id, ErrNotMatrixRelease)
	}

	major := 0
	for _, c := range rest[:digits] {
		major = major*10 + int(c-'0')
	}

	custom := ""
	switch {
	case digits == len(rest):
	case rest[digits] == '-' && digits+1 < len(rest):
		custom = rest[digits+1:]
	default:
		// Trailing garbage after the major, e.g. "rhel8x".
		return Descriptor{}, fmt.Errorf("release %q: %w", id, ErrNotMatrixRelease)
	}

	return Descriptor{
		LogicalName:      id[:idx],
		CustomCoordinate: custom,
		OSFamily:         OSFamilyRHEL,
		OSMajorVersion:   major,
		ResolvedID:       id,
	}, nil
}
