// Package journal implements the daily entry lifecycle and consolidation.
package journal

import (
	"fmt"
	"os"

	"github.com/moodtools/moodlog/internal/model"
)

// EnsureLayout creates the base directory and the daily entries
// subdirectory, parents included. Existing directories are left alone.
func EnsureLayout(cfg model.Config) error {
	if cfg.BaseDir == "" {
		return fmt.Errorf("base directory is empty")
	}
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create base directory: %w", err)
	}
	if err := os.MkdirAll(cfg.EntriesPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create entries directory: %w", err)
	}
	return nil
}
