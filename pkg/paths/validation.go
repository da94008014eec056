package paths

import (
	"strings"

	"github.com/arthur-debert/mydot/pkg/errors"
)

// maxPathLength is the common filesystem limit
const maxPathLength = 4096

// ValidatePath performs basic validation on a user-supplied path.
// It rejects empty paths, null bytes and excessive length.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(path) > maxPathLength {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateHostName ensures a host identity can be used as a single
// directory name at the repository root.
func ValidateHostName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "host name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "host name %q cannot contain path separators", name)
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "host name cannot be '.' or '..'")
	}

	// .git would collide with the version-control metadata directory
	if name == GitDirName {
		return errors.Newf(errors.ErrInvalidInput, "host name cannot be %q", GitDirName)
	}

	for _, r := range name {
		if r < 32 {
			return errors.New(errors.ErrInvalidInput, "host name contains control characters")
		}
	}

	return nil
}
