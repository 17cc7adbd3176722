package db

import (
	"fmt"
	"os"
	"path/filepath"
)

// NormalizeDatabasePath expands a leading ~, makes the path absolute and
// appends .db when the file name has no extension.
func NormalizeDatabasePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("database path cannot be empty")
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		switch {
		case len(path) == 1:
			path = home
		case path[1] == '/' || path[1] == filepath.Separator:
			path = filepath.Join(home, path[2:])
		default:
			path = filepath.Join(home, path[1:])
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if filepath.Ext(abs) == "" {
		abs += ".db"
	}
	return abs, nil
}
