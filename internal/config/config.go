// Package config loads and saves the user's settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
)

var cfgFile = "chessrules/config.json"

// InvalidConfig reports a settings file that loaded but cannot be used.
type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

// WindowConfig sizes the windowed board.
type WindowConfig struct {
	SquareSize int    `json:"square_size"`
	Title      string `json:"title"`
}

// StorageConfig controls where games and statistics are kept.
type StorageConfig struct {
	DataDir  string `json:"data_dir"`
	InMemory bool   `json:"in_memory"`
}

type Config struct {
	Window  WindowConfig  `json:"window"`
	Storage StorageConfig `json:"storage"`
	Hints   bool          `json:"hints"`
	Sound   bool          `json:"sound"`
}

// Load returns DefaultConfig overlaid with the user's config file, if one exists.
func Load() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Window.SquareSize < 32 || c.Window.SquareSize > 160 {
		return &InvalidConfig{fmt.Sprintf("square_size must be between 32 and 160, got %d", c.Window.SquareSize)}
	}
	if c.Storage.DataDir == "" && !c.Storage.InMemory {
		return &InvalidConfig{"data_dir must not be empty"}
	}
	return nil
}

// Save writes the config to the user's config directory and returns its path.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

// Path returns the path Save writes to.
func Path() (string, error) {
	return xdg.ConfigFile(cfgFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
