package platform

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func el8Info() *Info {
	return &Info{
		OS:       "linux",
		Arch:     "amd64",
		Kernel:   "4.18.0-477.27.1.el8_8.x86_64",
		Platform: "rocky",
		Family:   FamilyRHEL,
		Version:  "8.8",
	}
}

func TestInjectPlatformTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	InjectPlatformTable(L, el8Info())

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"os", `return platform.os`, "linux"},
		{"kernel", `return platform.kernel`, "4.18.0-477.27.1.el8_8.x86_64"},
		{"rhel_major", `return tostring(platform.rhel_major)`, "8"},
		{"is_rhel_family", `return tostring(platform.is_rhel_family)`, "true"},
		{"distro_id", `return platform.distro.id`, "rocky"},
		{"distro_family", `return platform.distro.family`, "rhel"},
		{"when_true", `return platform.when(true, "yes")`, "yes"},
		{"when_false", `return tostring(platform.when(false, "yes"))`, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.expr); err != nil {
				t.Fatalf("DoString(%q) failed: %v", tt.expr, err)
			}
			got := L.Get(-1).String()
			L.Pop(1)
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestInjectPlatformTableNoRHEL(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	InjectPlatformTable(L, &Info{
		OS:     "linux",
		Arch:   "amd64",
		Kernel: "6.5.0-35-generic",
	})

	if err := L.DoString(`return tostring(platform.rhel_major)`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if got := L.Get(-1).String(); got != "nil" {
		t.Errorf("rhel_major = %q, want nil", got)
	}
	L.Pop(1)

	if err := L.DoString(`return tostring(platform.distro)`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if got := L.Get(-1).String(); got != "nil" {
		t.Errorf("distro = %q, want nil", got)
	}
}

func TestPlatformTableReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	InjectPlatformTable(L, el8Info())

	err := L.DoString(`platform.os = "hacked"`)
	if err == nil {
		t.Fatal("expected write to platform table to fail")
	}
	if !strings.Contains(err.Error(), "read-only") {
		t.Errorf("error %q should mention read-only", err)
	}

	// Reads still work after the rejected write.
	if err := L.DoString(`return platform.os`); err != nil {
		t.Fatalf("read after rejected write failed: %v", err)
	}
	if got := L.Get(-1).String(); got != "linux" {
		t.Errorf("platform.os = %q, want linux", got)
	}
}
