package config

// Lua schema global and field names for the site configuration.
const (
	luaGlobalKomodo        = "komodo"
	luaFieldRoot           = "root"
	luaFieldDefaultRelease = "default_release"
	luaFieldKomodoBin      = "komodo_bin"
	luaFieldKeyring        = "keyring"
)

// Site configuration location.
const (
	// DefaultSitePath is where the site configuration lives unless
	// SiteConfigVar points elsewhere.
	DefaultSitePath = "/etc/komodo/komodo.lua"

	// SiteConfigVar overrides the site configuration path, mainly for
	// tests and staged rollouts.
	SiteConfigVar = "KOMODO_SITE_CONFIG"
)

// userConfigRelPath is the user configuration path relative to the user
// configuration directory (~/.config on Linux).
const userConfigRelPath = "komodo/config.toml"
