package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const entryPrefix = "mood_"
const entryExt = ".txt"

const dateLayout = "2006-01-02"

const entryTemplate = `Mood Journal - %s

Mood rating (1-10):

Notes:

Annoyances:

Highlights:

Energy level (1-10):

Hours of sleep:

Additional notes:

Goals for tomorrow:
`

// EntryFilename returns the canonical daily entry filename for a date.
func EntryFilename(day time.Time) string {
	return entryPrefix + day.Format(dateLayout) + entryExt
}

// CreateEntry writes the daily template for the given date unless the file
// already exists. The existing file is never touched; the path is returned
// either way.
func CreateEntry(entriesDir string, day time.Time) (string, bool, error) {
	path := filepath.Join(entriesDir, EntryFilename(day))
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("failed to stat entry: %w", err)
	}
	content := fmt.Sprintf(entryTemplate, day.Format(dateLayout))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write entry: %w", err)
	}
	return path, true, nil
}

// ParseEntryDate extracts the date from a daily entry filename. The second
// return value is false when the name does not match the naming pattern.
func ParseEntryDate(name string) (time.Time, bool) {
	if len(name) != len(entryPrefix)+len(dateLayout)+len(entryExt) {
		return time.Time{}, false
	}
	if name[:len(entryPrefix)] != entryPrefix || filepath.Ext(name) != entryExt {
		return time.Time{}, false
	}
	raw := name[len(entryPrefix) : len(name)-len(entryExt)]
	day, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
