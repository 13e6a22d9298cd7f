package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirName    = ".bitelog" // default under $HOME
	dbFilename = "bitelog.db"
)

// DataDir returns the directory where local state is stored (~/.bitelog).
// It creates the directory with 0700 permissions if it does not exist.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultDBPath returns the absolute path to the SQLite database file.
func DefaultDBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}
