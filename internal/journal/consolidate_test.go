package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moodtools/moodlog/internal/model"
)

func TestConsolidateOrdersByDate(t *testing.T) {
	dir := t.TempDir()
	entriesDir := filepath.Join(dir, "daily_entries")
	if err := os.MkdirAll(entriesDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// Written out of order on purpose.
	days := []string{"2024-01-03", "2024-01-01", "2024-01-02"}
	for _, day := range days {
		name := fmt.Sprintf("mood_%s.txt", day)
		content := fmt.Sprintf("content for %s\n", day)
		if err := os.WriteFile(filepath.Join(entriesDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	// Files outside the naming pattern are ignored.
	if err := os.WriteFile(filepath.Join(entriesDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	masterPath := filepath.Join(dir, "mood_history.txt")
	count, err := Consolidate(entriesDir, masterPath)
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 entries, got %d", count)
	}

	master, err := os.ReadFile(masterPath)
	if err != nil {
		t.Fatalf("read master: %v", err)
	}
	want := "=== Mood History ===\n" +
		"\n## mood_2024-01-01\ncontent for 2024-01-01\n----------------------------------------\n" +
		"\n## mood_2024-01-02\ncontent for 2024-01-02\n----------------------------------------\n" +
		"\n## mood_2024-01-03\ncontent for 2024-01-03\n----------------------------------------\n"
	if string(master) != want {
		t.Fatalf("unexpected master content:\n%s", master)
	}
}

func TestConsolidateEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	masterPath := filepath.Join(dir, "mood_history.txt")

	count, err := Consolidate(dir, masterPath)
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 entries, got %d", count)
	}
	master, err := os.ReadFile(masterPath)
	if err != nil {
		t.Fatalf("read master: %v", err)
	}
	if string(master) != "=== Mood History ===\n" {
		t.Fatalf("expected header only, got %q", master)
	}
}

func TestConsolidateReplacesMaster(t *testing.T) {
	dir := t.TempDir()
	masterPath := filepath.Join(dir, "mood_history.txt")
	if err := os.WriteFile(masterPath, []byte("stale content"), 0o644); err != nil {
		t.Fatalf("seed master: %v", err)
	}
	if _, err := Consolidate(dir, masterPath); err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	master, err := os.ReadFile(masterPath)
	if err != nil {
		t.Fatalf("read master: %v", err)
	}
	if strings.Contains(string(master), "stale") {
		t.Fatalf("old master content survived: %q", master)
	}
}

func TestPipelineDeterministic(t *testing.T) {
	cfg := model.Config{
		BaseDir:    t.TempDir(),
		EntriesDir: "daily_entries",
		MasterFile: "history.txt",
	}
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)

	var masters []string
	for i := 0; i < 2; i++ {
		if err := EnsureLayout(cfg); err != nil {
			t.Fatalf("ensure layout: %v", err)
		}
		if _, _, err := CreateEntry(cfg.EntriesPath(), day); err != nil {
			t.Fatalf("create entry: %v", err)
		}
		count, err := Consolidate(cfg.EntriesPath(), cfg.MasterPath())
		if err != nil {
			t.Fatalf("consolidate: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected exactly one entry, got %d", count)
		}
		master, err := os.ReadFile(cfg.MasterPath())
		if err != nil {
			t.Fatalf("read master: %v", err)
		}
		masters = append(masters, string(master))
	}
	if masters[0] != masters[1] {
		t.Fatalf("two runs produced different masters")
	}
	if !strings.Contains(masters[0], "## mood_2024-03-05\n") {
		t.Fatalf("master missing section header:\n%s", masters[0])
	}
	if strings.Count(masters[0], "## mood_") != 1 {
		t.Fatalf("expected exactly one section:\n%s", masters[0])
	}
}

func TestEnsureLayoutIdempotent(t *testing.T) {
	cfg := model.Config{BaseDir: filepath.Join(t.TempDir(), "j"), EntriesDir: "daily_entries"}
	for i := 0; i < 2; i++ {
		if err := EnsureLayout(cfg); err != nil {
			t.Fatalf("ensure layout run %d: %v", i+1, err)
		}
	}
	info, err := os.Stat(cfg.EntriesPath())
	if err != nil {
		t.Fatalf("stat entries dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("entries path is not a directory")
	}
}
