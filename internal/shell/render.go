package shell

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/komodo-env/komodo/internal/session"
)

// Renderer translates a session action list into shell code for one
// dialect family. Both renderers consume the identical list, which is what
// keeps bash-family and csh-family activation in lock-step: the semantics
// live in the session package, only the surface syntax lives here.
type Renderer interface {
	// Render returns the shell text for actions. Non-empty output ends in
	// a newline; an empty action list renders as "".
	Render(actions []session.Action) string
}

// NewRenderer returns the renderer for shell. binary is the path of the
// komodo executable, embedded wherever the emitted code re-invokes it.
func NewRenderer(shell ShellType, binary string) (Renderer, error) {
	if err := ValidateShell(shell); err != nil {
		return nil, err
	}
	if shell.Family() == FamilyCsh {
		return &cshRenderer{binary: binary}, nil
	}
	return &bashRenderer{binary: binary}, nil
}

// bashRenderer emits code understood by bash and zsh.
//
// Prompt handling is always an in-shell conditional: PS1 is a shell
// variable that usually is not exported, so this process cannot read its
// current value and must let the shell branch on it. The backup variable
// is exported so later invocations can show it in status output.
type bashRenderer struct {
	binary string
}

func (r *bashRenderer) Render(actions []session.Action) string {
	p := session.BashProfile
	var b strings.Builder
	for _, a := range actions {
		switch a := a.(type) {
		case session.SetEnv:
			fmt.Fprintf(&b, "export %s=%s\n", a.Name, QuoteBash(a.Value))
		case session.UnsetEnv:
			fmt.Fprintf(&b, "unset %s\n", a.Name)
		case session.SavePrompt:
			// ${VAR+x} is set-even-if-empty, so an empty prompt round-trips
			// as empty and an unset one as unset.
			fmt.Fprintf(&b, "if [ -n \"${%[1]s+x}\" ]; then export %[2]s=\"$%[1]s\"; else unset %[2]s; fi\n",
				p.PromptVar, p.PromptBackup)
		case session.DecoratePrompt:
			fmt.Fprintf(&b, "export %s=\"%s${%s:-}\"\n",
				p.PromptVar, dquoteEscape(a.Decoration), p.PromptBackup)
		case session.RestorePrompt:
			fmt.Fprintf(&b, "if [ -n \"${%[2]s+x}\" ]; then export %[1]s=\"$%[2]s\"; else unset %[1]s; fi\n",
				p.PromptVar, p.PromptBackup)
			fmt.Fprintf(&b, "unset %s\n", p.PromptBackup)
		case session.Rehash:
			b.WriteString("hash -r\n")
		case session.SourceLocal:
			local := filepath.Join(a.Dir, "local")
			fmt.Fprintf(&b, "if [ -f %[1]s ]; then . %[1]s; fi\n", QuoteBash(local))
		case session.RunMOTD:
			fmt.Fprintf(&b, "%s motd run --root %s\n", QuoteBash(r.binary), QuoteBash(a.Root))
		}
	}
	return b.String()
}

// cshRenderer emits code understood by csh and tcsh.
//
// csh backtick substitution collapses newlines to spaces before eval sees
// the text, so every emitted line must be a self-contained command ending
// in a semicolon and multi-line constructs are off limits. Conditionals
// use the single-line `if (expr) command` form only.
type cshRenderer struct {
	binary string
}

func (r *cshRenderer) Render(actions []session.Action) string {
	p := session.CshProfile
	var b strings.Builder
	for _, a := range actions {
		switch a := a.(type) {
		case session.SetEnv:
			fmt.Fprintf(&b, "setenv %s %s;\n", a.Name, QuoteCsh(a.Value))
		case session.UnsetEnv:
			fmt.Fprintf(&b, "unsetenv %s;\n", a.Name)
		case session.SavePrompt:
			fmt.Fprintf(&b, "if (! $?%[1]s) unset %[2]s;\n", p.PromptVar, p.PromptBackup)
			fmt.Fprintf(&b, "if ($?%[1]s) set %[2]s = \"$%[1]s:q\";\n", p.PromptVar, p.PromptBackup)
		case session.DecoratePrompt:
			deco := QuoteCsh(a.Decoration)
			fmt.Fprintf(&b, "if ($?%[2]s) set %[1]s = %[3]s\"$%[2]s:q\";\n", p.PromptVar, p.PromptBackup, deco)
			fmt.Fprintf(&b, "if (! $?%[2]s) set %[1]s = %[3]s;\n", p.PromptVar, p.PromptBackup, deco)
		case session.RestorePrompt:
			// Test before touching the backup: the unset of the prompt must
			// key off the backup's absence, not race its removal.
			fmt.Fprintf(&b, "if (! $?%[2]s) unset %[1]s;\n", p.PromptVar, p.PromptBackup)
			fmt.Fprintf(&b, "if ($?%[2]s) set %[1]s = \"$%[2]s:q\";\n", p.PromptVar, p.PromptBackup)
			fmt.Fprintf(&b, "unset %s;\n", p.PromptBackup)
		case session.Rehash:
			b.WriteString("rehash;\n")
		case session.SourceLocal:
			local := filepath.Join(a.Dir, "local.csh")
			fmt.Fprintf(&b, "if ( -f %[1]s ) source %[1]s;\n", QuoteCsh(local))
		case session.RunMOTD:
			fmt.Fprintf(&b, "%s motd run --root %s;\n", QuoteCsh(r.binary), QuoteCsh(a.Root))
		}
	}
	return b.String()
}

// QuoteBash single-quotes s for the bash family, closing and re-opening
// around any embedded quote.
func QuoteBash(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteCsh single-quotes s for the csh family. Single quotes stop every
// substitution except history expansion, so bangs also need a backslash,
// which csh strips even inside single quotes.
func QuoteCsh(s string) string {
	q := strings.ReplaceAll(s, "'", `'\''`)
	q = strings.ReplaceAll(q, "!", `\!`)
	return "'" + q + "'"
}

// dquoteEscape escapes s for interpolation inside a double-quoted bash
// string.
func dquoteEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")
	return r.Replace(s)
}
