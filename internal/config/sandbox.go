package config

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM strips capabilities a site configuration must not have:
// process control and environment access (os), filesystem access (io),
// code loading (require, dofile, loadfile, load, loadstring), and the
// debug library, which could reach around the other restrictions.
//
// string, table, and math stay available, so configurations remain
// declarative: they can compute values but not touch the system.
func sandboxLuaVM(L *lua.LState) {
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)
	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)
	L.SetGlobal("debug", lua.LNil)
}

// newSandboxedVM creates a Lua state with the sandbox applied. All site
// configuration parsing goes through here.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
