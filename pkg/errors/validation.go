package errors

import (
	"strings"
	"unicode"
)

// ValidateOutputName validates a file name produced for a diagram.
// It rejects names that could escape the output directory.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or parent directory references
//   - Maximum length of 255 bytes
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output file name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "output file name too long (max 255 bytes)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output file name contains invalid control characters")
		}
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "output file name cannot be %q", name)
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output file name cannot contain path separators")
	}

	return nil
}

// ValidateInputPath validates the input path supplied by the user.
func ValidateInputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "input path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "input path contains a null byte")
	}
	return nil
}
