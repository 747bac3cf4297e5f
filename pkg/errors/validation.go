package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxVertices bounds the size of a vertex file accepted by the loaders.
const MaxVertices = 50_000_000

// ValidatePath validates a user-supplied input or output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormat checks that format (case-insensitive) is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateVertexCount rejects negative counts and counts above MaxVertices.
func ValidateVertexCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "vertex count cannot be negative: %d", n)
	}
	if n > MaxVertices {
		return New(ErrCodeInvalidInput, "too many vertices: %d (max %d)", n, MaxVertices)
	}
	return nil
}
