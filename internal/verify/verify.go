// Package verify checks release-tree integrity. A release build ships a
// SHA256SUMS manifest at the tree root and, on sites that sign their
// builds, a detached PGP signature over that manifest. Verification
// checks the signature first, then hashes every listed file, and reports
// all findings rather than stopping at the first.
package verify

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// Manifest file names inside a release tree.
const (
	ChecksumsName = "SHA256SUMS"
	SignatureName = "SHA256SUMS.sig"
)

// ErrNoChecksums is returned for trees without a SHA256SUMS manifest.
// Such trees cannot be verified at all, which doctor reports differently
// from a tree that fails verification.
var ErrNoChecksums = errors.New("release tree carries no checksum manifest")

// MismatchError reports one file whose content does not match the
// manifest.
type MismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s:\nexpected: %s\nactual:   %s",
		e.Path, e.Expected, e.Actual)
}

// Report summarizes one tree verification.
type Report struct {
	Checked  int    // files hashed against the manifest
	Signed   bool   // manifest signature verified
	SignedBy string // key id of the verified signer
	Failures []error
}

// OK reports whether the tree passed completely.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Verifier checks release trees against an optional PGP keyring.
type Verifier struct {
	keyringPath string
}

// NewVerifier creates a verifier. keyringPath names the armored or binary
// public keyring releases are signed with, usually the site config
// "keyring" value; empty means checksum-only verification.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// VerifyTree verifies the release tree rooted at prefix. Problems with
// the tree (bad signature, mismatched or missing files) land in the
// report; problems with the verifier's own inputs (unreadable keyring,
// no manifest) are returned as errors.
func (v *Verifier) VerifyTree(prefix string) (*Report, error) {
	sumsPath := filepath.Join(prefix, ChecksumsName)
	if _, err := os.Stat(sumsPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", prefix, ErrNoChecksums)
		}
		return nil, fmt.Errorf("stat checksum manifest: %w", err)
	}

	report := &Report{}
	if v.keyringPath != "" {
		if err := v.checkSignature(prefix, sumsPath, report); err != nil {
			return nil, err
		}
	}

	entries, err := parseChecksums(sumsPath)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		// A manifest must not reach outside its own tree.
		if !filepath.IsLocal(entry.name) {
			report.Failures = append(report.Failures,
				fmt.Errorf("manifest entry %q escapes the release tree", entry.name))
			continue
		}

		actual, err := hashFile(filepath.Join(prefix, entry.name))
		if err != nil {
			report.Failures = append(report.Failures, fmt.Errorf("hash %s: %w", entry.name, err))
			continue
		}
		report.Checked++
		if !strings.EqualFold(actual, entry.sum) {
			report.Failures = append(report.Failures, &MismatchError{
				Path:     entry.name,
				Expected: entry.sum,
				Actual:   actual,
			})
		}
	}
	return report, nil
}

// checkSignature verifies the detached signature over the manifest,
// trying armored first and binary second, like the keyring loading.
func (v *Verifier) checkSignature(prefix, sumsPath string, report *Report) error {
	keyring, err := v.loadKeyring()
	if err != nil {
		return err
	}

	sigPath := filepath.Join(prefix, SignatureName)
	sigFile, err := os.Open(sigPath)
	if errors.Is(err, os.ErrNotExist) {
		report.Failures = append(report.Failures,
			fmt.Errorf("%s: manifest is unsigned (no %s)", prefix, SignatureName))
		return nil
	}
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	sums, err := os.Open(sumsPath)
	if err != nil {
		return fmt.Errorf("open checksum manifest: %w", err)
	}
	defer sums.Close()

	signer, err := openpgp.CheckArmoredDetachedSignature(keyring, sums, sigFile, nil)
	if err != nil {
		sums.Seek(0, io.SeekStart)
		sigFile.Seek(0, io.SeekStart)
		signer, err = openpgp.CheckDetachedSignature(keyring, sums, sigFile, nil)
	}
	if err != nil {
		report.Failures = append(report.Failures, fmt.Errorf("manifest signature check failed: %w", err))
		return nil
	}

	report.Signed = true
	report.SignedBy = signer.PrimaryKey.KeyIdString()
	return nil
}

// loadKeyring reads the public keyring, armored or binary.
func (v *Verifier) loadKeyring() (openpgp.EntityList, error) {
	f, err := os.Open(v.keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		f.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}
	if len(keyring) == 0 {
		return nil, errors.New("keyring is empty")
	}
	return keyring, nil
}

type manifestEntry struct {
	sum  string
	name string
}

// parseChecksums reads a sha256sum-format manifest: one "<hex>  <path>"
// line per file, "*" binary-mode markers tolerated, blank lines and
// "#" comments skipped.
func parseChecksums(path string) ([]manifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checksum manifest: %w", err)
	}
	defer f.Close()

	var entries []manifestEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		entries = append(entries, manifestEntry{
			sum:  parts[0],
			name: strings.TrimPrefix(parts[1], "*"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan checksum manifest: %w", err)
	}
	return entries, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
