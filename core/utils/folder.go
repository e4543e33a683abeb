package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// PrepareFolder resolves path against the working directory and makes sure it exists.
// If clear is true an existing directory is removed first, so the result is empty.
// It returns the absolute path of the folder.
func PrepareFolder(path string, clear bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve folder %q: %w", path, err)
	}

	if clear {
		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			if err := os.RemoveAll(abs); err != nil {
				return "", fmt.Errorf("failed to clear folder %q: %w", abs, err)
			}
		case err != nil && !os.IsNotExist(err):
			return "", fmt.Errorf("failed to inspect folder %q: %w", abs, err)
		}
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", abs, err)
	}

	return abs, nil
}
