// Package config loads komodo's two configuration layers and merges them
// into the settings commands consume.
//
// # Layers
//
// The site layer is a Lua file maintained by the machine's administrators,
// /etc/komodo/komodo.lua by default (KOMODO_SITE_CONFIG overrides the
// path). It runs in a sandboxed Lua VM with a read-only platform table
// injected, so one file can serve a heterogeneous park of machines:
//
//	komodo = {
//	    root = platform.is_rhel_family and "/prod/komodo" or nil,
//	    default_release = "stable",
//	    komodo_bin = "/prod/komodo/bin/komodo",
//	    keyring = "/etc/komodo/keyring",
//	}
//
// The platform table exposes os, arch, kernel, is_linux, is_rhel_family,
// rhel_major (nil on hosts no release is built for), a distro table (id,
// family, version), and a when(condition, value) helper.
//
// The user layer is a TOML file in the user's configuration directory,
// ~/.config/komodo/config.toml on Linux:
//
//	release = "bleeding"
//	shell = "zsh"
//	debug = false
//
// # Precedence
//
// User values override site values; command-line flags override both.
// Both files are optional, and a missing file simply contributes nothing:
//
//	settings, err := config.Load(ctx)
//
// # Sandboxing
//
// Site configurations execute declaratively. The Lua VM has no os, io,
// require, dofile, loadfile, load, loadstring, or debug; string, table,
// and math remain. Parse failures carry the raw Lua error in a ParseError
// whose Detail is shown only in debug output.
package config
