//go:build go1.18

package config

import (
	"context"
	"testing"
)

func FuzzParserParseString(f *testing.F) {
	f.Add(`komodo = { root = "/prod/komodo" }`)
	f.Add(`komodo = { default_release = "stable" }`)
	f.Add(`komodo = { root = platform.is_rhel_family and "/prod/komodo" or nil }`)
	f.Add(`komodo = "not a table"`)
	f.Add(`komodo = { unterminated`)

	parser := NewParserWithPlatform(rhel8Platform())

	f.Fuzz(func(t *testing.T, luaCode string) {
		// Must never panic; errors are fine.
		_, _ = parser.ParseString(context.Background(), luaCode)
	})
}
