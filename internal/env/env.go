// Package env models a process environment table as an explicit value.
//
// Activation and deactivation are specified as transitions over this value,
// so the save/restore logic can be exercised in tests without a real shell.
// A variable's absence is part of the model: restoring a variable that was
// unset before activation must unset it again, not set it to "".
package env

import (
	"sort"
	"strings"
)

// Var holds the observed state of a single variable. Present=false records
// that the variable was unset, which is distinct from an empty value.
type Var struct {
	Present bool
	Value   string
}

// Set returns a Var for a present value.
func Set(value string) Var {
	return Var{Present: true, Value: value}
}

// Unset returns a Var recording absence.
func Unset() Var {
	return Var{}
}

// Environment maps variable names to their observed state. Mutating methods
// change the map in place; transition code clones first so callers keep
// their original value.
type Environment map[string]Var

// New returns an empty environment.
func New() Environment {
	return Environment{}
}

// FromEnviron parses "KEY=VALUE" pairs as returned by os.Environ.
// Malformed entries without "=" are skipped; duplicate keys keep the last
// value, matching os.Getenv.
func FromEnviron(environ []string) Environment {
	e := New()
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		e[name] = Var{Present: true, Value: value}
	}
	return e
}

// Clone returns an independent copy of e.
func (e Environment) Clone() Environment {
	c := make(Environment, len(e))
	for name, v := range e {
		c[name] = v
	}
	return c
}

// Lookup returns the state of name. Names never written report absence.
func (e Environment) Lookup(name string) Var {
	return e[name]
}

// Get returns the value of name, or "" when absent.
func (e Environment) Get(name string) string {
	return e[name].Value
}

// Has reports whether name is present.
func (e Environment) Has(name string) bool {
	return e[name].Present
}

// Set marks name present with value.
func (e Environment) Set(name, value string) {
	e[name] = Var{Present: true, Value: value}
}

// Unset removes name. The absence is recorded, not merely an empty value.
func (e Environment) Unset(name string) {
	delete(e, name)
}

// Apply writes v under name, setting or unsetting as v dictates.
func (e Environment) Apply(name string, v Var) {
	if v.Present {
		e.Set(name, v.Value)
	} else {
		e.Unset(name)
	}
}

// Environ renders the present variables as sorted "KEY=VALUE" pairs.
func (e Environment) Environ() []string {
	out := make([]string, 0, len(e))
	for name, v := range e {
		if v.Present {
			out = append(out, name+"="+v.Value)
		}
	}
	sort.Strings(out)
	return out
}

// Equal reports whether e and other agree on every variable, including
// absences recorded explicitly on either side.
func (e Environment) Equal(other Environment) bool {
	for name, v := range e {
		if other[name] != v {
			return false
		}
	}
	for name, v := range other {
		if e[name] != v {
			return false
		}
	}
	return true
}

// Snapshot records the pre-activation state of the tracked variables.
type Snapshot map[string]Var

// Capture copies the state of names out of e.
func Capture(e Environment, names []string) Snapshot {
	s := make(Snapshot, len(names))
	for _, name := range names {
		s[name] = e.Lookup(name)
	}
	return s
}

// Clone returns an independent copy of s.
func (s Snapshot) Clone() Snapshot {
	c := make(Snapshot, len(s))
	for name, v := range s {
		c[name] = v
	}
	return c
}
