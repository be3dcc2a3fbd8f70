// Package storage persists saved games, preferences and result statistics in BadgerDB.
package storage

import (
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// GetDataDir returns the application data directory, creating it if needed.
// A relative name is placed under the XDG data home
// (~/.local/share on Linux, ~/Library/Application Support on macOS,
// %LOCALAPPDATA% on Windows); an absolute name is used as is.
func GetDataDir(name string) (string, error) {
	dataDir := name
	if !filepath.IsAbs(name) {
		dataDir = filepath.Join(xdg.DataHome, name)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetDatabaseDir returns the directory for the BadgerDB files.
func GetDatabaseDir(name string) (string, error) {
	dataDir, err := GetDataDir(name)
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	log.Printf("[STORAGE] Database directory: %s", dbDir)
	return dbDir, nil
}
