// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Journal JournalConfig `toml:"journal"`
}

// JournalConfig maps journal-related settings.
type JournalConfig struct {
	BaseDir             *string `toml:"base-dir"`
	EntriesDir          *string `toml:"entries-dir"`
	MasterFile          *string `toml:"master-file"`
	WaitForEditor       *bool   `toml:"wait-for-editor"`
	Editor              *string `toml:"editor"`
	LockAttempts        *int    `toml:"lock-attempts"`
	LockIntervalSeconds *int    `toml:"lock-interval-seconds"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
