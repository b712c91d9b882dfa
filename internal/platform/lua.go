package platform

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/komodo-env/komodo/internal/release"
)

// InjectPlatformTable installs a read-only `platform` global describing the
// host, so site configurations can branch on where they run. Call before
// loading any configuration code.
func InjectPlatformTable(L *lua.LState, info *Info) {
	t := L.NewTable()

	L.SetField(t, "os", lua.LString(info.OS))
	L.SetField(t, "arch", lua.LString(info.Arch))
	L.SetField(t, "kernel", lua.LString(info.Kernel))

	L.SetField(t, "is_linux", lua.LBool(info.IsLinux()))
	L.SetField(t, "is_rhel_family", lua.LBool(info.IsRHELFamily()))

	// The resolved Enterprise Linux major, or nil on hosts no release is
	// built for. Lets sites do `root = platform.rhel_major and "/prod/komodo" or nil`.
	if major, err := release.MajorFromKernel(info.Kernel); err == nil {
		L.SetField(t, "rhel_major", lua.LNumber(major))
	} else {
		L.SetField(t, "rhel_major", lua.LNil)
	}

	if info.Platform != "" {
		distro := L.NewTable()
		L.SetField(distro, "id", lua.LString(info.Platform))
		L.SetField(distro, "family", lua.LString(info.Family))
		L.SetField(distro, "version", lua.LString(info.Version))
		L.SetField(t, "distro", distro)
	} else {
		L.SetField(t, "distro", lua.LNil)
	}

	// when(condition, value) returns value when condition holds, else nil.
	L.SetField(t, "when", L.NewFunction(func(L *lua.LState) int {
		cond := L.CheckBool(1)
		value := L.Get(2)
		if cond {
			L.Push(value)
		} else {
			L.Push(lua.LNil)
		}
		return 1
	}))

	L.SetGlobal("platform", makeReadOnly(L, t))
}

// makeReadOnly wraps table in a proxy whose metatable forwards reads and
// rejects all writes, including metatable replacement.
func makeReadOnly(L *lua.LState, table *lua.LTable) *lua.LTable {
	mt := L.NewTable()
	L.SetField(mt, "__index", table)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("platform table is read-only and cannot be modified")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)
	return proxy
}
