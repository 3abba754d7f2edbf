package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidateEntityName checks a folder or file name after the caller has
// trimmed it. Uniqueness among siblings is not this function's concern.
func ValidateEntityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("name contains invalid UTF-8 characters")
	}

	return nil
}

// ValidatePath rejects traversal attempts before path resolution runs.
func ValidatePath(path string) error {
	if strings.Contains(path, "..") {
		return fmt.Errorf("path cannot contain '..'")
	}
	return nil
}
