package env

import (
	"reflect"
	"testing"
)

func TestFromEnviron(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		want    Environment
	}{
		{
			name:    "simple_pairs",
			environ: []string{"PATH=/usr/bin", "HOME=/home/alice"},
			want: Environment{
				"PATH": {Present: true, Value: "/usr/bin"},
				"HOME": {Present: true, Value: "/home/alice"},
			},
		},
		{
			name:    "empty_value_is_present",
			environ: []string{"MANPATH="},
			want: Environment{
				"MANPATH": {Present: true, Value: ""},
			},
		},
		{
			name:    "value_containing_equals",
			environ: []string{"PS1=\\u@\\h$ ", "LS_COLORS=di=34:ln=36"},
			want: Environment{
				"PS1":       {Present: true, Value: "\\u@\\h$ "},
				"LS_COLORS": {Present: true, Value: "di=34:ln=36"},
			},
		},
		{
			name:    "duplicate_keeps_last",
			environ: []string{"PATH=/old", "PATH=/new"},
			want: Environment{
				"PATH": {Present: true, Value: "/new"},
			},
		},
		{
			name:    "malformed_entries_skipped",
			environ: []string{"NOEQUALS", "=value", "OK=1"},
			want: Environment{
				"OK": {Present: true, Value: "1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromEnviron(tt.environ)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromEnviron() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnvironmentSetUnset(t *testing.T) {
	e := New()

	e.Set("PATH", "/usr/bin")
	if !e.Has("PATH") || e.Get("PATH") != "/usr/bin" {
		t.Errorf("after Set: Has=%v Get=%q", e.Has("PATH"), e.Get("PATH"))
	}

	e.Set("PATH", "")
	if !e.Has("PATH") {
		t.Error("empty value should still be present")
	}

	e.Unset("PATH")
	if e.Has("PATH") {
		t.Error("variable still present after Unset")
	}
	if v := e.Lookup("PATH"); v.Present {
		t.Errorf("Lookup after Unset = %v, want absent", v)
	}
}

func TestEnvironmentApply(t *testing.T) {
	e := New()
	e.Set("MANPATH", "/usr/share/man")

	e.Apply("MANPATH", Unset())
	if e.Has("MANPATH") {
		t.Error("Apply with absent Var should unset")
	}

	e.Apply("MANPATH", Set(""))
	if v := e.Lookup("MANPATH"); !v.Present || v.Value != "" {
		t.Errorf("Apply with empty value = %v, want present empty", v)
	}
}

func TestEnvironmentClone(t *testing.T) {
	orig := Environment{
		"PATH": {Present: true, Value: "/usr/bin"},
	}

	clone := orig.Clone()
	clone.Set("PATH", "/changed")
	clone.Set("NEW", "value")

	if orig.Get("PATH") != "/usr/bin" {
		t.Errorf("clone mutation leaked into original: PATH = %q", orig.Get("PATH"))
	}
	if orig.Has("NEW") {
		t.Error("clone addition leaked into original")
	}
}

func TestEnvironmentEnviron(t *testing.T) {
	e := Environment{
		"B": {Present: true, Value: "2"},
		"A": {Present: true, Value: "1"},
	}

	got := e.Environ()
	want := []string{"A=1", "B=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}
}

func TestEnvironmentEqual(t *testing.T) {
	tests := []struct {
		name string
		a    Environment
		b    Environment
		want bool
	}{
		{
			name: "identical",
			a:    Environment{"PATH": {Present: true, Value: "/usr/bin"}},
			b:    Environment{"PATH": {Present: true, Value: "/usr/bin"}},
			want: true,
		},
		{
			name: "different_value",
			a:    Environment{"PATH": {Present: true, Value: "/usr/bin"}},
			b:    Environment{"PATH": {Present: true, Value: "/usr/local/bin"}},
			want: false,
		},
		{
			name: "absent_vs_empty",
			a:    Environment{},
			b:    Environment{"PATH": {Present: true, Value: ""}},
			want: false,
		},
		{
			name: "missing_key_both_ways",
			a:    Environment{"A": {Present: true, Value: "1"}},
			b:    Environment{"B": {Present: true, Value: "2"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapture(t *testing.T) {
	e := Environment{
		"PATH": {Present: true, Value: "/usr/bin"},
		"PS1":  {Present: true, Value: "$ "},
	}

	snap := Capture(e, []string{"PATH", "MANPATH", "PS1"})

	want := Snapshot{
		"PATH":    {Present: true, Value: "/usr/bin"},
		"MANPATH": {},
		"PS1":     {Present: true, Value: "$ "},
	}
	if !reflect.DeepEqual(snap, want) {
		t.Errorf("Capture() = %v, want %v", snap, want)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	// Restoring a captured snapshot must reproduce the original state,
	// including variables that were absent.
	tracked := []string{"PATH", "MANPATH", "LD_LIBRARY_PATH", "PS1"}

	orig := Environment{
		"PATH":    {Present: true, Value: "/usr/bin:/bin"},
		"MANPATH": {Present: true, Value: ""},
		"PS1":     {Present: true, Value: "$ "},
		// LD_LIBRARY_PATH deliberately absent
	}

	snap := Capture(orig, tracked)

	mutated := orig.Clone()
	mutated.Set("PATH", "/prefix/bin:/usr/bin:/bin")
	mutated.Set("LD_LIBRARY_PATH", "/prefix/lib")
	mutated.Unset("MANPATH")

	for _, name := range tracked {
		mutated.Apply(name, snap[name])
	}

	if !mutated.Equal(orig) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", mutated, orig)
	}
	if mutated.Has("LD_LIBRARY_PATH") {
		t.Error("LD_LIBRARY_PATH should be absent after restore")
	}
}
