package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxPathLen bounds user-supplied paths; anything longer is almost certainly a mistake.
const maxPathLen = 1024

// ValidatePath checks a user-supplied file path (plan, var file, config).
//
// Rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or other control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxPathLen {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLen)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}

// ValidateOutputName checks the base name of the output artifact.
// The name is joined with an extension chosen from the render format, so it
// must not end in a path separator or name a directory like "." or "..".
func ValidateOutputName(name string) error {
	if err := ValidatePath(name); err != nil {
		return err
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, `\`) {
		return New(ErrCodeInvalidPath, "output %q names a directory", name)
	}
	switch filepath.Base(name) {
	case ".", "..":
		return New(ErrCodeInvalidPath, "output %q names a directory", name)
	}
	return nil
}
