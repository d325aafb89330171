// Package config resolves where an auto-save instance keeps its files and
// validates the caller-supplied folder name.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidFolderName is wrapped by all folder validation failures. These
// are construction-time configuration errors, not runtime conditions.
var ErrInvalidFolderName = errors.New("invalid save folder name")

// ValidateFolder checks a save-folder name. The name must be a single path
// element that stays inside the data root; leading-dot names are rejected
// unless allowHidden is set.
func ValidateFolder(name string, allowHidden bool) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFolderName)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidFolderName, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q escapes the data directory", ErrInvalidFolderName, name)
	}
	if !allowHidden && strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidFolderName, name)
	}
	return nil
}

// DataDir returns the directory a save folder lives in. When base is empty
// the platform per-user configuration directory is used. The folder name must
// already have been validated.
func DataDir(base, folder string) (string, error) {
	if base == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user config directory: %w", err)
		}
		base = dir
	}
	return filepath.Join(base, folder), nil
}
