package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPathEscape indicates the resolved path would escape the trusted root directory.
	ErrPathEscape = errors.New("path escapes base directory")
	// ErrUnsafeRemoval indicates a directory too broad to be wiped and rebuilt.
	ErrUnsafeRemoval = errors.New("refusing to remove directory")
)

// ResolveWithin joins the provided path elements under the given base directory and ensures
// the resulting path never traverses outside of that base. The returned path is absolute.
func ResolveWithin(base string, elems ...string) (string, error) {
	if base == "" {
		return "", errors.New("base directory is required")
	}

	cleanBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base path: %w", err)
	}

	joined := filepath.Join(append([]string{cleanBase}, elems...)...)
	target, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolve target path: %w", err)
	}

	rel, err := filepath.Rel(cleanBase, target)
	if err != nil {
		return "", fmt.Errorf("relativize path: %w", err)
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, target)
	}

	return target, nil
}

// ArchiveName returns path relative to base with forward slashes, for use as
// a zip entry name. Paths outside base are rejected.
func ArchiveName(base, path string) (string, error) {
	cleanBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base path: %w", err)
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve target path: %w", err)
	}

	rel, err := filepath.Rel(cleanBase, target)
	if err != nil {
		return "", fmt.Errorf("relativize path: %w", err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, target)
	}

	return filepath.ToSlash(rel), nil
}

// CheckRemovable rejects directories that must never be wiped: the
// filesystem root, the user's home and the working directory.
func CheckRemovable(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty path", ErrUnsafeRemoval)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	abs = filepath.Clean(abs)

	if abs == filepath.VolumeName(abs)+string(os.PathSeparator) {
		return fmt.Errorf("%w: %s", ErrUnsafeRemoval, abs)
	}
	if home, err := os.UserHomeDir(); err == nil && filepath.Clean(home) == abs {
		return fmt.Errorf("%w: %s", ErrUnsafeRemoval, abs)
	}
	if wd, err := os.Getwd(); err == nil && filepath.Clean(wd) == abs {
		return fmt.Errorf("%w: %s", ErrUnsafeRemoval, abs)
	}

	return nil
}
