// Package switchgen generates activator switches: small sourceable shims
// installed under the release root that pick the concrete build of a
// release for whatever host sources them.
//
// A matrix release "2025.02-rhel8" gets a directory "<root>/2025.02"
// holding "enable" (bash family) and "enable.csh" (csh family). Users
// source the shim from their rc files; the shim evals the activator
// binary, which resolves the running platform to the right "-rhel<N>"
// variant or warns and leaves the session untouched. The shim itself
// never hardcodes a platform, so one rc-file line survives OS upgrades
// and new release builds.
package switchgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/komodo-env/komodo/internal/git"
	"github.com/komodo-env/komodo/internal/release"
	"github.com/komodo-env/komodo/internal/shell"
	"github.com/komodo-env/komodo/internal/validate"
)

// File names of the two shims inside the switch directory.
const (
	BashScriptName = "enable"
	CshScriptName  = "enable.csh"
)

var bashShim = template.Must(template.New(BashScriptName).Parse(`# Komodo activator switch for {{.Name}}.
# Sourcing this file activates the build of {{.Name}} made for this host.
if [ -x {{.Bin}} ] ; then
    eval "$({{.Bin}} activate bash --root {{.Root}} --release {{.Release}}{{if .Custom}} --custom {{.Custom}}{{end}})"
else
    echo 'komodo: activator binary not found:' {{.Bin}} >&2
fi
`))

// The csh shim is sourced, not eval'd from backticks, so multi-line
// constructs are safe here unlike in the emitted activation code.
var cshShim = template.Must(template.New(CshScriptName).Parse(
	"# Komodo activator switch for {{.Name}}.\n" +
		"# Sourcing this file activates the build of {{.Name}} made for this host.\n" +
		"if ( -x {{.Bin}} ) then\n" +
		"    eval \"`{{.Bin}} activate csh --root {{.Root}} --release {{.Release}}{{if .Custom}} --custom {{.Custom}}{{end}}`\"\n" +
		"else\n" +
		"    echo 'komodo: activator binary not found:' {{.Bin}}\n" +
		"endif\n"))

// shimParams carries pre-quoted values into the templates. Quoting
// happens per dialect before execution; the templates only splice.
type shimParams struct {
	Name    string
	Bin     string
	Root    string
	Release string
	Custom  string
}

// Result describes what Create wrote.
type Result struct {
	// Skipped is set for names without a "-rhel<N>" part. Such ad-hoc
	// builds exist for one platform only and need no switch.
	Skipped bool

	// Name is the switch directory name under the root: the logical
	// release name plus any custom coordinate.
	Name string

	Dir      string
	BashPath string
	CshPath  string
}

// Create writes the activator switch for a concrete release id under
// root. bin is the absolute path of the activator binary the shims
// invoke. Non-matrix names are skipped, not failed, so callers can feed
// every release under a root through without filtering first.
func Create(root, releaseID, bin string) (*Result, error) {
	if err := validate.AbsolutePath(root, "root"); err != nil {
		return nil, err
	}
	if err := validate.AbsolutePath(bin, "komodo binary"); err != nil {
		return nil, err
	}

	desc, err := release.ParseResolvedID(releaseID)
	if errors.Is(err, release.ErrNotMatrixRelease) {
		return &Result{Skipped: true, Name: releaseID}, nil
	}
	if err != nil {
		return nil, err
	}

	name := desc.LogicalName
	if desc.CustomCoordinate != "" {
		name += "-" + desc.CustomCoordinate
	}

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create switch dir: %w", err)
	}

	result := &Result{
		Name:     name,
		Dir:      dir,
		BashPath: filepath.Join(dir, BashScriptName),
		CshPath:  filepath.Join(dir, CshScriptName),
	}

	bash, err := renderShim(bashShim, shimParams{
		Name:    name,
		Bin:     shell.QuoteBash(bin),
		Root:    shell.QuoteBash(root),
		Release: shell.QuoteBash(desc.LogicalName),
		Custom:  quoteNonEmpty(shell.QuoteBash, desc.CustomCoordinate),
	})
	if err != nil {
		return nil, err
	}
	csh, err := renderShim(cshShim, shimParams{
		Name:    name,
		Bin:     shell.QuoteCsh(bin),
		Root:    shell.QuoteCsh(root),
		Release: shell.QuoteCsh(desc.LogicalName),
		Custom:  quoteNonEmpty(shell.QuoteCsh, desc.CustomCoordinate),
	})
	if err != nil {
		return nil, err
	}

	if err := writeFileAtomic(result.BashPath, []byte(bash)); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(result.CshPath, []byte(csh)); err != nil {
		return nil, err
	}
	return result, nil
}

// CommitScripts stages and commits the shims Create wrote, for roots
// kept under git. The caller decides how to treat git.ErrNotARepo.
func CommitScripts(ctx context.Context, root string, res *Result) (string, error) {
	if res == nil || res.Skipped {
		return "", nil
	}

	relBash, err := filepath.Rel(root, res.BashPath)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", res.BashPath, err)
	}
	relCsh, err := filepath.Rel(root, res.CshPath)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", res.CshPath, err)
	}

	client := git.NewClient(root)
	if err := client.Stage(ctx, relBash, relCsh); err != nil {
		return "", err
	}
	return client.Commit(ctx, fmt.Sprintf("Update activator switch for %s", res.Name))
}

func renderShim(tmpl *template.Template, p shimParams) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, p); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return b.String(), nil
}

func quoteNonEmpty(quote func(string) string, s string) string {
	if s == "" {
		return ""
	}
	return quote(s)
}

// writeFileAtomic writes via a temp file and rename so a shim being
// sourced concurrently never sees a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".switch-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
