package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/komodo-env/komodo/internal/platform"
)

// Parser parses the Lua site configuration inside the sandbox, with the
// host's platform table injected.
type Parser struct {
	// info pins the platform for tests; nil means detect the real host.
	info *platform.Info
}

// NewParser creates a parser that detects the running host.
func NewParser() *Parser {
	return &Parser{}
}

// NewParserWithPlatform creates a parser with a fixed platform, so tests
// can exercise site configurations for hosts they are not running on.
func NewParserWithPlatform(info *platform.Info) *Parser {
	return &Parser{info: info}
}

// ParseFile parses the site configuration at path. A missing file reports
// ErrNotFound so callers can treat the site layer as optional.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read site config %s: %w", path, err)
	}
	return p.ParseString(ctx, string(data))
}

// ParseString parses a Lua site configuration from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Site, error) {
	info := p.info
	if info == nil {
		detected, err := platform.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		info = detected
	}

	L := newSandboxedVM()
	defer L.Close()

	platform.InjectPlatformTable(L, info)

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractSite(L)
}

// ParseError represents a site configuration parsing error.
type ParseError struct {
	Message string // user-facing message
	Detail  string // raw Lua error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractSite pulls the configuration out of the Lua state. It expects a
// global table named after the distribution:
//
//	komodo = {
//	    root = "/prod/komodo",
//	    default_release = "stable",
//	}
func extractSite(L *lua.LState) (*Site, error) {
	global := L.GetGlobal(luaGlobalKomodo)
	if global.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'komodo' table",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}
	table := global.(*lua.LTable)

	site := &Site{
		Root:           stringField(table, luaFieldRoot),
		DefaultRelease: stringField(table, luaFieldDefaultRelease),
		KomodoBin:      stringField(table, luaFieldKomodoBin),
		Keyring:        stringField(table, luaFieldKeyring),
	}

	if err := site.Validate(); err != nil {
		return nil, &ParseError{
			Message: "site config validation failed",
			Detail:  err.Error(),
		}
	}

	return site, nil
}

// stringField reads a string-typed field, treating any other type as
// unset. Platform conditionals evaluate to nil on non-matching hosts, so
// nil here means "no value for this machine", not an error.
func stringField(table *lua.LTable, field string) string {
	if v := table.RawGetString(field); v.Type() == lua.LTString {
		return v.String()
	}
	return ""
}

// FormatError formats a configuration error for the user. Verbose mode
// includes the raw Lua error with its stack traceback.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
