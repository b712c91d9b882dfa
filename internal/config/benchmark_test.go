package config

import (
	"context"
	"testing"
)

// BenchmarkParserParseString measures a representative site configuration
// parse, the cost added to every activation that loads the site layer.
func BenchmarkParserParseString(b *testing.B) {
	luaCode := `
		komodo = {
			root = platform.is_rhel_family and "/prod/komodo" or nil,
			default_release = platform.rhel_major and ("stable-rhel" .. platform.rhel_major) or nil,
			komodo_bin = "/prod/komodo/bin/komodo",
			keyring = "/etc/komodo/keyring",
		}
	`

	parser := NewParserWithPlatform(rhel8Platform())
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := parser.ParseString(context.Background(), luaCode); err != nil {
			b.Fatalf("parse failed: %v", err)
		}
	}
}
