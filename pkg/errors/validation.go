package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a path the file writer is asked to create.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No null bytes or control characters
//   - Maximum length of 500 characters
//   - No path traversal segments (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "output path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// diagramNameRegex matches catalog names such as "erd" or "csv-export-flow".
var diagramNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateDiagramName validates a diagram name used for lookups, file names
// and URL path segments.
func ValidateDiagramName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "diagram name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "diagram name too long (max 64 characters)")
	}
	if !diagramNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid diagram name: %q", name)
	}
	return nil
}
