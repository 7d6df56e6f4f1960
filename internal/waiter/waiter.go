// Package waiter blocks the pipeline until editing is presumed finished.
package waiter

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/moodtools/moodlog/internal/model"
)

// Waiter waits until the daily entry is presumed to be done being edited.
// Wait returns an error only for context cancellation; every other failure
// mode is a soft condition that is logged and swallowed.
type Waiter interface {
	Wait(ctx context.Context, path string) error
}

// For selects the waiting strategy from the run configuration.
func For(cfg model.Config, logger *zap.Logger) Waiter {
	if cfg.WaitForEditor {
		return &EditorWaiter{Editor: cfg.Editor, logger: logger}
	}
	return &LockPollWaiter{
		Attempts: cfg.LockAttempts,
		Interval: cfg.LockInterval,
		logger:   logger,
	}
}

// EditorWaiter spawns an editor for the file and blocks until it exits.
type EditorWaiter struct {
	Editor string
	logger *zap.Logger
}

// Wait launches the configured editor (or the OS default opener) with the
// file path and blocks on process exit. A spawn failure is not fatal: some
// file associations never hand back a trackable process, so the pipeline
// logs a warning and moves on instead of hanging forever.
func (w *EditorWaiter) Wait(ctx context.Context, path string) error {
	name, args := resolveEditor(w.Editor, path)
	w.logger.Debug("launching editor", zap.String("editor", name), zap.String("path", path))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		w.logger.Warn("could not launch editor, continuing without waiting",
			zap.String("editor", name), zap.Error(err))
		return nil
	}
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.logger.Warn("editor exited with error", zap.Error(err))
	}
	return nil
}

func resolveEditor(editor, path string) (string, []string) {
	candidate := strings.TrimSpace(editor)
	if candidate == "" {
		candidate = strings.TrimSpace(os.Getenv("VISUAL"))
	}
	if candidate == "" {
		candidate = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if candidate != "" {
		parts := strings.Fields(candidate)
		return parts[0], append(parts[1:], path)
	}
	switch runtime.GOOS {
	case "darwin":
		// -W keeps open(1) alive until the opened application exits.
		return "open", []string{"-W", path}
	case "windows":
		return "cmd", []string{"/c", "start", "/wait", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// LockPollWaiter repeatedly probes the file for exclusive access. It exists
// for editors that detach from their launching process, where a spawned-wait
// would return immediately. The probe is a heuristic proxy for "the editor
// has released the file", not a guarantee.
type LockPollWaiter struct {
	Attempts int
	Interval time.Duration
	logger   *zap.Logger

	// probe overrides the exclusive-access check in tests.
	probe func(path string) error
}

// Wait polls until the file can be opened exclusively or the attempt budget
// runs out. Exhaustion is a warning, not an error: consolidation proceeds
// with whatever content currently exists.
func (w *LockPollWaiter) Wait(ctx context.Context, path string) error {
	probe := w.probe
	if probe == nil {
		probe = probeExclusive
	}
	attempts := w.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		err := probe(path)
		if err == nil {
			w.logger.Debug("entry is not locked", zap.String("path", path), zap.Int("attempt", i+1))
			return nil
		}
		w.logger.Debug("entry still locked",
			zap.String("path", path), zap.Int("attempt", i+1), zap.Error(err))
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.Interval):
		}
	}
	w.logger.Warn("entry still locked after polling, consolidating best-effort",
		zap.String("path", path), zap.Int("attempts", attempts))
	return nil
}

func probeExclusive(path string) error {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	return file.Close()
}
