// Package validate provides input validation shared by the config, motd,
// and command layers.
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance using built-in validations only.
var validate = validator.New()

// releaseNameRegex restricts names to characters that survive as a single
// path component under the distribution root and as a bare word in emitted
// shell code.
var releaseNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ReleaseNameFormat validates a logical release name. Names become
// directory names under the distribution root and are spliced into shell
// activation scripts, so the character set is kept narrow.
func ReleaseNameFormat(name string) error {
	if name == "" {
		return fmt.Errorf("release name cannot be empty")
	}
	if !releaseNameRegex.MatchString(name) {
		return fmt.Errorf("release name %q must contain only letters, numbers, dots, hyphens, and underscores", name)
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		return fmt.Errorf("release name %q cannot start with a dot or hyphen", name)
	}
	return nil
}

// AbsolutePath validates that a configured path is absolute. Roots are
// quoted into emitted shell code that runs with an arbitrary working
// directory, so relative paths would resolve differently per caller.
func AbsolutePath(path, fieldName string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be an absolute path, got %q", fieldName, path)
	}
	return nil
}

// RequiredString validates that a string field is non-empty.
func RequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateField validates a single value against validator tags, e.g.
// ValidateField(port, "min=1,max=65535").
func ValidateField(value any, tag string) error {
	return validate.Var(value, tag)
}

// ValidateStruct validates a struct against its field tags.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
