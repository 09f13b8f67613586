package database

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName  = "labrain"
	fileName = "notes.db"
)

// ResolvePath returns the database file inside dataDir, or inside the
// platform's local data directory when dataDir is empty.
func ResolvePath(dataDir string) (string, error) {
	if dataDir != "" {
		return filepath.Join(dataDir, fileName), nil
	}

	path, err := xdg.DataFile(filepath.Join(appName, fileName))
	if err != nil {
		return "", directoryErr("resolve data directory", err)
	}
	return path, nil
}

// Open opens the store in dataDir, falling back to the platform data
// directory.
func Open(dataDir string) (*Store, error) {
	path, err := ResolvePath(dataDir)
	if err != nil {
		return nil, err
	}
	return New(path)
}
