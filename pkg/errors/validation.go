package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// tagNamePattern matches HTML tag names accepted as target selectors.
var tagNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// ValidateSelector validates the tag name used to pick layout targets.
// Only bare tag names are supported; CSS selectors are rejected.
func ValidateSelector(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidConfig, "selector cannot be empty")
	}
	if len(tag) > 64 {
		return New(ErrCodeInvalidConfig, "selector too long (max 64 characters)")
	}
	if !tagNamePattern.MatchString(tag) {
		return New(ErrCodeInvalidConfig, "selector must be a tag name: %q", tag)
	}
	return nil
}

// ValidateRange validates a half-open interval [min, max) used for uniform draws.
// A degenerate interval (min == max) is allowed and always yields min.
// Both bounds must be finite.
func ValidateRange(name string, min, max float64) error {
	if !isFinite(min) || !isFinite(max) {
		return New(ErrCodeInvalidConfig, "%s range must be finite: [%g, %g]", name, min, max)
	}
	if min > max {
		return New(ErrCodeInvalidConfig, "%s range is inverted: min %g > max %g", name, min, max)
	}
	return nil
}

// ValidateCoordinate validates a slot coordinate in pixels.
func ValidateCoordinate(name string, v float64) error {
	if !isFinite(v) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %g", name, v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidatePath validates a file path given on the command line or in a config.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// The special path "-" (stdin/stdout) is accepted.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "path too long (max 4096 characters)")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains null byte")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}
