package journal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moodtools/moodlog/internal/model"
)

const masterHeader = "=== Mood History ==="
const sectionSeparator = "----------------------------------------"

// ListEntries returns all daily entry files in the directory, sorted by
// filename. The zero-padded date in the name makes that order chronological.
func ListEntries(entriesDir string) ([]model.Entry, error) {
	dirEntries, err := os.ReadDir(entriesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries directory: %w", err)
	}
	entries := make([]model.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		day, ok := ParseEntryDate(name)
		if !ok {
			continue
		}
		entries = append(entries, model.Entry{
			Date: day,
			Name: name,
			Path: filepath.Join(entriesDir, name),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Consolidate rebuilds the master history file from all daily entries. The
// previous master content is replaced in full; a failed read or write leaves
// the old file in place.
func Consolidate(entriesDir, masterPath string) (int, error) {
	entries, err := ListEntries(entriesDir)
	if err != nil {
		return 0, err
	}

	var b strings.Builder
	b.WriteString(masterHeader)
	b.WriteString("\n")
	for _, entry := range entries {
		content, err := os.ReadFile(entry.Path)
		if err != nil {
			return 0, fmt.Errorf("failed to read entry %s: %w", entry.Name, err)
		}
		b.WriteString("\n## ")
		b.WriteString(strings.TrimSuffix(entry.Name, entryExt))
		b.WriteString("\n")
		b.Write(content)
		if !strings.HasSuffix(string(content), "\n") {
			b.WriteString("\n")
		}
		b.WriteString(sectionSeparator)
		b.WriteString("\n")
	}

	if err := writeMaster(masterPath, b.String()); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func writeMaster(path, content string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "mood_history-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp master file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.WriteString(content); err != nil {
		return fmt.Errorf("failed to write master file: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush master file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close master file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace master file: %w", err)
	}
	return nil
}
