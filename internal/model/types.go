// Package model defines shared data structures.
package model

import (
	"path/filepath"
	"time"
)

// Config defines journal pipeline settings for a single run.
type Config struct {
	BaseDir       string
	EntriesDir    string
	MasterFile    string
	WaitForEditor bool
	Editor        string
	LockAttempts  int
	LockInterval  time.Duration
}

// EntriesPath returns the absolute path of the daily entries directory.
func (c Config) EntriesPath() string {
	if filepath.IsAbs(c.EntriesDir) {
		return c.EntriesDir
	}
	return filepath.Join(c.BaseDir, c.EntriesDir)
}

// MasterPath returns the absolute path of the master history file.
func (c Config) MasterPath() string {
	if filepath.IsAbs(c.MasterFile) {
		return c.MasterFile
	}
	return filepath.Join(c.BaseDir, c.MasterFile)
}

// Entry identifies one daily entry file on disk.
type Entry struct {
	Date time.Time
	Name string
	Path string
}

// MoodSample holds the numeric fields parsed from one daily entry.
type MoodSample struct {
	Date       time.Time
	Path       string
	Mood       *int
	Energy     *int
	SleepHours *float64
}

// StatsConfig defines filters for stats output.
type StatsConfig struct {
	Since *time.Time
	Last  int
}
