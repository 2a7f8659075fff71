package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateName reports why name can never match an entry of a single
// directory listing.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("name contains null byte")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("name refers to a directory: %s", name)
	}
	if strings.ContainsRune(name, '/') ||
		strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("name contains a path separator: %s", name)
	}
	return nil
}

// ManifestDir is the directory files in a manifest are resolved against
// when none is given explicitly.
func ManifestDir(manifest string) string {
	return filepath.Dir(manifest)
}

// SameFile reports whether a and b name the same path once cleaned and
// made absolute.
func SameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
