// Package store handles the SQLite mood index.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moodtools/moodlog/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const dateLayout = "2006-01-02"

// Store wraps SQLite access for the mood index. The entry files stay the
// source of truth; the index is rebuilt from them and only serves queries.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			date TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			mood INTEGER,
			energy INTEGER,
			sleep_hours REAL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_mood ON entries(mood);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// UpsertSample stores or replaces the indexed fields for one entry date.
func (s *Store) UpsertSample(ctx context.Context, sample model.MoodSample) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (date, path, mood, energy, sleep_hours, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			path = excluded.path,
			mood = excluded.mood,
			energy = excluded.energy,
			sleep_hours = excluded.sleep_hours,
			updated_at = excluded.updated_at`,
		sample.Date.Format(dateLayout),
		sample.Path,
		nullableInt(sample.Mood),
		nullableInt(sample.Energy),
		nullableFloat(sample.SleepHours),
		time.Now().Format(time.RFC3339Nano),
	)
	return err
}

// ListSamples returns indexed samples filtered by stats config, oldest first.
func (s *Store) ListSamples(ctx context.Context, cfg model.StatsConfig) ([]model.MoodSample, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, cfg.Since.Format(dateLayout))
	}
	query := `SELECT date, path, mood, energy, sleep_hours FROM entries
		WHERE ` + strings.Join(clauses, " AND ") + `
		ORDER BY date ASC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var samples []model.MoodSample
	for rows.Next() {
		var sample model.MoodSample
		var date string
		var mood, energy sql.NullInt64
		var sleep sql.NullFloat64
		if err := rows.Scan(&date, &sample.Path, &mood, &energy, &sleep); err != nil {
			return nil, err
		}
		parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil {
			return nil, err
		}
		sample.Date = parsed
		if mood.Valid {
			v := int(mood.Int64)
			sample.Mood = &v
		}
		if energy.Valid {
			v := int(energy.Int64)
			sample.Energy = &v
		}
		if sleep.Valid {
			v := sleep.Float64
			sample.SleepHours = &v
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(samples) > cfg.Last {
		samples = samples[len(samples)-cfg.Last:]
	}
	return samples, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
