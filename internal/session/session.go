// Package session implements the activation state machine: idempotent,
// reentrant save and restore of the shell variables komodo mutates.
//
// Transitions are pure. Activate and Disable take a Process value and
// return the updated Process together with the ordered list of Actions the
// calling shell must perform; nothing here touches the real environment.
// cmd/komodo reconstructs the Process from environ, runs one transition and
// hands the actions to a shell renderer, whose output the shell evals.
package session

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/komodo-env/komodo/internal/env"
	"github.com/komodo-env/komodo/internal/release"
)

// Tracked path variables, snapshotted on activation and restored exactly,
// including recorded absence, on disable.
const (
	VarPath          = "PATH"
	VarManpath       = "MANPATH"
	VarLdLibraryPath = "LD_LIBRARY_PATH"
)

// Session identity, written by activation and cleared unconditionally on
// every disable. ERT_LSF_SERVER belongs to external tooling that points it
// at a job scheduler while a release is active; komodo clears it on disable
// but never sets or reads it.
const (
	VarRelease      = "KOMODO_RELEASE"
	VarRoot         = "KOMODO_ROOT"
	VarERTLSFServer = "ERT_LSF_SERVER"
)

// VarGuard carries the session id across process boundaries. Its presence
// in environ is what marks a session as active.
const VarGuard = "_KOMODO_SESSION"

const backupPrefix = "_PRE_KOMODO_"

var (
	pathVars     = []string{VarPath, VarManpath, VarLdLibraryPath}
	identityVars = []string{VarRelease, VarRoot, VarERTLSFServer}
)

// BackupName returns the exported variable that carries the pre-activation
// state of name. A present backup, even an empty one, means name was set;
// an absent backup means name was unset.
func BackupName(name string) string {
	return backupPrefix + name
}

// Profile captures what differs between the two shell families at the
// model level: where the prompt lives and whether its backup is visible to
// this process.
type Profile struct {
	// PromptVar is the dialect's prompt variable.
	PromptVar string

	// PromptBackup holds the pre-activation prompt across activations.
	PromptBackup string

	// PromptInEnviron reports whether PromptBackup is exported. The csh
	// family keeps it as a `set` shell variable, so FromEnviron can never
	// observe it there.
	PromptInEnviron bool
}

var (
	// BashProfile covers bash and zsh.
	BashProfile = Profile{
		PromptVar:       "PS1",
		PromptBackup:    backupPrefix + "PS1",
		PromptInEnviron: true,
	}

	// CshProfile covers csh and tcsh. Both the prompt and its backup live
	// outside the exported environment, which is why every prompt action
	// renders as an in-shell conditional.
	CshProfile = Profile{
		PromptVar:       "prompt",
		PromptBackup:    "_KOMODO_OLD_PROMPT",
		PromptInEnviron: false,
	}
)

// Session is the state of one activation. At most one exists per shell
// process; re-activation mutates it rather than stacking a second one.
type Session struct {
	// ID is minted at the outermost activation, kept stable across nested
	// re-activations and exported as VarGuard.
	ID string

	Release release.Descriptor

	// Root is the directory holding the release trees, exported as
	// KOMODO_ROOT. The active install prefix is Root/<ResolvedID>.
	Root string

	// Snapshot records the pre-activation state of the path variables.
	Snapshot env.Snapshot
}

// Prefix returns the installation tree of the active release.
func (s *Session) Prefix() string {
	return s.Release.InstallPrefix(s.Root)
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Snapshot = s.Snapshot.Clone()
	return &c
}

// Process models the calling shell: its environment table, its dialect
// family and the active session, if any. Holding the session as an explicit
// field instead of re-deriving it from guard variables at every step is
// what keeps the transitions below straight-line.
//
// For the csh family the environment value also carries the prompt and its
// backup as if they were exported; only FromEnviron and the renderers deal
// with the fact that the real shell keeps them private.
type Process struct {
	Env     env.Environment
	Profile Profile
	Active  *Session
}

func (p Process) clone() Process {
	p.Env = p.Env.Clone()
	p.Active = p.Active.clone()
	return p
}

// Disable restores every tracked variable to its snapshotted state, then
// unconditionally clears the session identity variables. With preserveGuard
// the session survives, reduced to its id, so Activate can flatten and
// re-snapshot in a single transition; without it the session and its
// exported guard are removed.
//
// Disable cannot fail. On a process with no active session it still clears
// the identity variables, mirroring the unconditional shell function it
// replaces.
func Disable(p Process, preserveGuard bool) (Process, []Action) {
	p = p.clone()

	var actions []Action
	emit := func(a Action) {
		applyAction(&p, a)
		actions = append(actions, a)
	}

	if p.Active != nil {
		for _, name := range pathVars {
			if v := p.Active.Snapshot[name]; v.Present {
				emit(SetEnv{Name: name, Value: v.Value})
			} else {
				emit(UnsetEnv{Name: name})
			}
			emit(UnsetEnv{Name: BackupName(name)})
		}
		emit(RestorePrompt{})
	}

	for _, name := range identityVars {
		emit(UnsetEnv{Name: name})
	}

	if preserveGuard {
		if p.Active != nil {
			p.Active = &Session{ID: p.Active.ID}
		}
	} else {
		emit(UnsetEnv{Name: VarGuard})
		p.Active = nil
	}

	return p, actions
}

// Activate switches p to rel installed under root. Any active session is
// first flattened back to its true pre-activation values, so the fresh
// snapshot taken afterwards records the same state the original one did:
// repeated activation never stacks, and a single disable fully unwinds any
// number of activations. The session id survives re-activation.
//
// Callers refuse unresolvable platforms and missing release trees before
// this point; the transition itself is unconditional and cannot fail.
func Activate(p Process, rel release.Descriptor, root string) (Process, []Action) {
	p, actions := Disable(p, true)

	emit := func(a Action) {
		applyAction(&p, a)
		actions = append(actions, a)
	}

	snap := env.Capture(p.Env, pathVars)

	id := uuid.New().String()
	if p.Active != nil {
		id = p.Active.ID
	}

	for _, name := range pathVars {
		if v := snap[name]; v.Present {
			emit(SetEnv{Name: BackupName(name), Value: v.Value})
		} else {
			emit(UnsetEnv{Name: BackupName(name)})
		}
	}
	emit(SavePrompt{})

	emit(SetEnv{Name: VarRelease, Value: rel.ResolvedID})
	emit(SetEnv{Name: VarRoot, Value: root})

	prefix := rel.InstallPrefix(root)
	emit(SetEnv{Name: VarPath, Value: prepend(filepath.Join(prefix, "bin"), snap[VarPath])})
	// MANPATH keeps a separator even with no prior value; the empty
	// trailing element makes man append its built-in search path.
	emit(SetEnv{Name: VarManpath, Value: filepath.Join(prefix, "share", "man") + ":" + snap[VarManpath].Value})
	libs := filepath.Join(prefix, "lib") + ":" + filepath.Join(prefix, "lib64")
	emit(SetEnv{Name: VarLdLibraryPath, Value: prepend(libs, snap[VarLdLibraryPath])})

	emit(DecoratePrompt{Decoration: "(" + rel.ResolvedID + ") "})
	emit(Rehash{})

	emit(SetEnv{Name: VarGuard, Value: id})
	p.Active = &Session{ID: id, Release: rel, Root: root, Snapshot: snap}

	emit(SourceLocal{Dir: root})
	emit(RunMOTD{Root: root})

	return p, actions
}

// prepend joins head with the snapshotted tail, separated by ":" only when
// the tail was present and non-empty.
func prepend(head string, tail env.Var) string {
	if tail.Present && tail.Value != "" {
		return head + ":" + tail.Value
	}
	return head
}

// applyAction mirrors a single action onto the in-memory environment.
// Rehash, SourceLocal and RunMOTD have no environment effect.
func applyAction(p *Process, a Action) {
	switch a := a.(type) {
	case SetEnv:
		p.Env.Set(a.Name, a.Value)
	case UnsetEnv:
		p.Env.Unset(a.Name)
	case SavePrompt:
		p.Env.Apply(p.Profile.PromptBackup, p.Env.Lookup(p.Profile.PromptVar))
	case DecoratePrompt:
		p.Env.Set(p.Profile.PromptVar, a.Decoration+p.Env.Get(p.Profile.PromptBackup))
	case RestorePrompt:
		p.Env.Apply(p.Profile.PromptVar, p.Env.Lookup(p.Profile.PromptBackup))
		p.Env.Unset(p.Profile.PromptBackup)
	}
}
