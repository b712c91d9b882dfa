package session

import (
	"github.com/komodo-env/komodo/internal/env"
	"github.com/komodo-env/komodo/internal/release"
)

// FromEnviron reconstructs the calling shell's Process from raw environ
// entries. The guard variable is authoritative: a session exists exactly
// when VarGuard is present, and the snapshot is decoded from the backup
// variables, a present backup meaning the variable was set and an absent
// one meaning it was unset. Stale backups without a guard are ignored.
//
// The prompt never appears in the reconstructed snapshot. Its backup is
// only exported in the bash family, and even there the renderers handle
// save and restore entirely in-shell, so nothing downstream reads it.
func FromEnviron(environ []string, profile Profile) Process {
	p := Process{Env: env.FromEnviron(environ), Profile: profile}

	guard := p.Env.Lookup(VarGuard)
	if !guard.Present {
		return p
	}

	snap := make(env.Snapshot, len(pathVars))
	for _, name := range pathVars {
		snap[name] = p.Env.Lookup(BackupName(name))
	}

	p.Active = &Session{
		ID:       guard.Value,
		Release:  describeActive(p.Env.Get(VarRelease)),
		Root:     p.Env.Get(VarRoot),
		Snapshot: snap,
	}
	return p
}

// describeActive rebuilds a Descriptor from the exported resolved id. Ids
// that do not parse as matrix releases are carried verbatim, so status and
// disable keep working on sessions activated by older tooling.
func describeActive(resolvedID string) release.Descriptor {
	d, err := release.ParseResolvedID(resolvedID)
	if err != nil {
		return release.Descriptor{LogicalName: resolvedID, ResolvedID: resolvedID}
	}
	return d
}
