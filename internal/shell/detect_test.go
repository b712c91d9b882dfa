package shell

import (
	"errors"
	"testing"
)

func TestDetectShell(t *testing.T) {
	tests := []struct {
		name           string
		shellEnv       string
		wantShell      ShellType
		wantMethod     string
		wantConfidence string
	}{
		{
			name:           "Bash from SHELL",
			shellEnv:       "/bin/bash",
			wantShell:      ShellBash,
			wantMethod:     "$SHELL environment variable",
			wantConfidence: "high",
		},
		{
			name:           "Zsh from SHELL",
			shellEnv:       "/usr/bin/zsh",
			wantShell:      ShellZsh,
			wantMethod:     "$SHELL environment variable",
			wantConfidence: "high",
		},
		{
			name:           "Csh from SHELL",
			shellEnv:       "/bin/csh",
			wantShell:      ShellCsh,
			wantMethod:     "$SHELL environment variable",
			wantConfidence: "high",
		},
		{
			name:           "Tcsh from SHELL",
			shellEnv:       "/usr/bin/tcsh",
			wantShell:      ShellTcsh,
			wantMethod:     "$SHELL environment variable",
			wantConfidence: "high",
		},
		{
			// The parent of the test binary is the go tool, so the
			// fallback cannot find a shell either.
			name:           "Unknown shell from SHELL",
			shellEnv:       "/bin/ksh",
			wantShell:      ShellUnknown,
			wantMethod:     "detection failed",
			wantConfidence: "none",
		},
		{
			name:           "Empty SHELL variable",
			shellEnv:       "",
			wantShell:      ShellUnknown,
			wantMethod:     "detection failed",
			wantConfidence: "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.shellEnv)

			result := DetectShell()

			if result.Shell != tt.wantShell {
				t.Errorf("DetectShell() shell = %v, want %v", result.Shell, tt.wantShell)
			}
			if result.Method != tt.wantMethod {
				t.Errorf("DetectShell() method = %v, want %v", result.Method, tt.wantMethod)
			}
			if result.Confidence != tt.wantConfidence {
				t.Errorf("DetectShell() confidence = %v, want %v", result.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestParseShellFromPath(t *testing.T) {
	tests := []struct {
		path string
		want ShellType
	}{
		{"/bin/bash", ShellBash},
		{"/usr/bin/zsh", ShellZsh},
		{"/bin/csh", ShellCsh},
		{"/usr/local/bin/tcsh", ShellTcsh},
		{"/bin/TCSH", ShellTcsh},
		{"bash", ShellBash},
		{"/bin/fish", ShellUnknown},
		{"/bin/sh", ShellUnknown},
		{"", ShellUnknown},
	}

	for _, tt := range tests {
		if got := parseShellFromPath(tt.path); got != tt.want {
			t.Errorf("parseShellFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    ShellType
		wantErr bool
	}{
		{"bash", ShellBash, false},
		{"zsh", ShellZsh, false},
		{"csh", ShellCsh, false},
		{"tcsh", ShellTcsh, false},
		{"TCSH", ShellTcsh, false},
		{"fish", ShellUnknown, true},
		{"", ShellUnknown, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidateShell(t *testing.T) {
	for _, st := range GetSupportedShells() {
		if err := ValidateShell(st); err != nil {
			t.Errorf("ValidateShell(%v) = %v, want nil", st, err)
		}
	}

	err := ValidateShell(ShellUnknown)
	if err == nil {
		t.Fatal("ValidateShell(unknown) = nil, want error")
	}
	var unsupported *UnsupportedShellError
	if !errors.As(err, &unsupported) {
		t.Errorf("ValidateShell(unknown) error type = %T, want *UnsupportedShellError", err)
	}
}

func TestFamily(t *testing.T) {
	tests := []struct {
		shell ShellType
		want  Family
	}{
		{ShellBash, FamilyBash},
		{ShellZsh, FamilyBash},
		{ShellCsh, FamilyCsh},
		{ShellTcsh, FamilyCsh},
	}
	for _, tt := range tests {
		if got := tt.shell.Family(); got != tt.want {
			t.Errorf("%v.Family() = %v, want %v", tt.shell, got, tt.want)
		}
	}
}

func TestProfile(t *testing.T) {
	if p := ShellZsh.Profile(); p.PromptVar != "PS1" {
		t.Errorf("zsh prompt variable = %q, want PS1", p.PromptVar)
	}
	if p := ShellTcsh.Profile(); p.PromptVar != "prompt" {
		t.Errorf("tcsh prompt variable = %q, want prompt", p.PromptVar)
	}
}
