// Package main provides the CLI entrypoint for moodlog.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moodtools/moodlog/internal/browseui"
	"github.com/moodtools/moodlog/internal/config"
	"github.com/moodtools/moodlog/internal/journal"
	"github.com/moodtools/moodlog/internal/model"
	"github.com/moodtools/moodlog/internal/mood"
	"github.com/moodtools/moodlog/internal/store"
	"github.com/moodtools/moodlog/internal/waiter"
)

const (
	defaultEntriesDir   = "daily_entries"
	defaultMasterFile   = "mood_history.txt"
	defaultLockAttempts = 30
	defaultLockInterval = 2
)

var (
	baseDir      string
	entriesDir   string
	masterFile   string
	waitEditor   bool
	editorCmd    string
	lockAttempts int
	lockInterval int
	verbose      bool

	statsSince string
	statsLast  int

	logger *zap.Logger
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "moodlog",
		Short:         "Daily mood journal",
		Long:          "moodlog creates a dated mood entry from a template, waits for you to edit it, and consolidates all entries into a single history file.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			zapCfg := zap.NewProductionConfig()
			if verbose {
				zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zapCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runJournalCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "journal base directory (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&entriesDir, "entries-dir", defaultEntriesDir, "daily entries subdirectory")
	rootCmd.PersistentFlags().StringVar(&masterFile, "master", defaultMasterFile, "master history filename")
	rootCmd.Flags().BoolVar(&waitEditor, "wait-editor", true, "spawn an editor and wait for it (false: poll the file lock)")
	rootCmd.Flags().StringVar(&editorCmd, "editor", "", "editor command (default: $VISUAL, $EDITOR, then OS opener)")
	rootCmd.Flags().IntVar(&lockAttempts, "lock-attempts", defaultLockAttempts, "lock poll attempts")
	rootCmd.Flags().IntVar(&lockInterval, "lock-interval", defaultLockInterval, "seconds between lock polls")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newConsolidateCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newBrowseCmd())

	return rootCmd
}

func loadRunConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "base-dir", &baseDir, fileCfg.Journal.BaseDir)
	applyStringConfig(cmd, "entries-dir", &entriesDir, fileCfg.Journal.EntriesDir)
	applyStringConfig(cmd, "master", &masterFile, fileCfg.Journal.MasterFile)
	applyBoolConfig(cmd, "wait-editor", &waitEditor, fileCfg.Journal.WaitForEditor)
	applyStringConfig(cmd, "editor", &editorCmd, fileCfg.Journal.Editor)
	applyIntConfig(cmd, "lock-attempts", &lockAttempts, fileCfg.Journal.LockAttempts)
	applyIntConfig(cmd, "lock-interval", &lockInterval, fileCfg.Journal.LockIntervalSeconds)

	cfg := model.Config{
		BaseDir:       baseDir,
		EntriesDir:    entriesDir,
		MasterFile:    masterFile,
		WaitForEditor: waitEditor,
		Editor:        editorCmd,
		LockAttempts:  lockAttempts,
		LockInterval:  time.Duration(lockInterval) * time.Second,
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = config.DefaultBaseDir()
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.EntriesDir == "" {
		return fmt.Errorf("--entries-dir must not be empty")
	}
	if cfg.MasterFile == "" {
		return fmt.Errorf("--master must not be empty")
	}
	if cfg.LockAttempts <= 0 {
		return fmt.Errorf("--lock-attempts must be > 0")
	}
	if cfg.LockInterval <= 0 {
		return fmt.Errorf("--lock-interval must be > 0")
	}
	return nil
}

func runJournalCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Read the clock once so the filename and the template header cannot
	// disagree across a midnight rollover.
	today := time.Now()

	if err := journal.EnsureLayout(cfg); err != nil {
		logger.Error("failed to prepare journal directories", zap.Error(err))
		return err
	}
	logger.Debug("journal directories ready",
		zap.String("base", cfg.BaseDir), zap.String("entries", cfg.EntriesPath()))

	entryPath, created, err := journal.CreateEntry(cfg.EntriesPath(), today)
	if err != nil {
		logger.Error("failed to create daily entry", zap.Error(err))
		return err
	}
	if created {
		logger.Info("created daily entry", zap.String("path", entryPath))
	} else {
		logger.Debug("daily entry already exists", zap.String("path", entryPath))
	}

	if err := waiter.For(cfg, logger).Wait(ctx, entryPath); err != nil {
		return err
	}

	count, err := journal.Consolidate(cfg.EntriesPath(), cfg.MasterPath())
	if err != nil {
		logger.Error("consolidation failed", zap.Error(err))
		return err
	}
	logger.Info("consolidated daily entries",
		zap.Int("entries", count), zap.String("master", cfg.MasterPath()))

	// Index refresh is a convenience for `moodlog stats`; its failure must
	// not fail a run that already produced the master file.
	if err := refreshIndex(ctx, cfg); err != nil {
		logger.Warn("failed to refresh mood index", zap.Error(err))
	}
	return nil
}

func refreshIndex(ctx context.Context, cfg model.Config) error {
	entries, err := journal.ListEntries(cfg.EntriesPath())
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open mood index: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close mood index", zap.Error(cerr))
		}
	}()
	for _, entry := range entries {
		content, err := os.ReadFile(entry.Path)
		if err != nil {
			return fmt.Errorf("failed to read entry %s: %w", entry.Name, err)
		}
		sample := mood.ParseSample(entry, string(content))
		if err := st.UpsertSample(ctx, sample); err != nil {
			return fmt.Errorf("failed to index entry %s: %w", entry.Name, err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newConsolidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consolidate",
		Short: "Rebuild the master history file without creating an entry",
		Args:  cobra.NoArgs,
		RunE:  runConsolidateCmd,
	}
}

func runConsolidateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	count, err := journal.Consolidate(cfg.EntriesPath(), cfg.MasterPath())
	if err != nil {
		logger.Error("consolidation failed", zap.Error(err))
		return err
	}
	logger.Info("consolidated daily entries",
		zap.Int("entries", count), zap.String("master", cfg.MasterPath()))
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show mood stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N entries")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	if err := refreshIndex(ctx, cfg); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open mood index: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close mood index", zap.Error(cerr))
		}
	}()

	samples, err := st.ListSamples(ctx, model.StatsConfig{Since: sinceTime, Last: statsLast})
	if err != nil {
		return fmt.Errorf("failed to query mood index: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(samples) == 0 {
		_, err := fmt.Fprintln(out, "no entries recorded yet")
		return err
	}

	rows := make([][]string, 0, len(samples))
	for _, sample := range samples {
		rows = append(rows, []string{
			sample.Date.Format("2006-01-02"),
			formatIntCell(sample.Mood),
			formatIntCell(sample.Energy),
			formatFloatCell(sample.SleepHours),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range mood.FormatTable([]string{"date", "mood", "energy", "sleep"}, rows, rightAlign) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	summary := mood.Summarize(samples)
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if summary.Rated > 0 {
		if _, err := fmt.Fprintf(out, "mood avg %.1f (min %d, max %d) over %d rated of %d entries\n",
			summary.MoodAvg, summary.MoodMin, summary.MoodMax, summary.Rated, summary.Entries); err != nil {
			return err
		}
	}
	if summary.SleepCount > 0 {
		if _, err := fmt.Fprintf(out, "sleep avg %.1fh over %d entries\n", summary.SleepAvg, summary.SleepCount); err != nil {
			return err
		}
	}
	if trend := mood.RenderTrend(samples, mood.TerminalWidth()); trend != "" {
		if _, err := fmt.Fprintf(out, "trend: %s\n", trend); err != nil {
			return err
		}
	}
	return nil
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse daily entries",
		Args:  cobra.NoArgs,
		RunE:  runBrowseCmd,
	}
}

func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	entries, err := journal.ListEntries(cfg.EntriesPath())
	if err != nil {
		return err
	}
	program := tea.NewProgram(browseui.NewModel(entries), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}

func formatIntCell(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func formatFloatCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# moodlog configuration
# Uncomment a value to enable it. CLI flags override config values.

[journal]
# base-dir = ""                 # Journal base directory (default: XDG data dir)
# entries-dir = %q              # Daily entries subdirectory
# master-file = %q              # Master history filename
# wait-for-editor = true        # Spawn an editor and wait (false: poll the file lock)
# editor = ""                   # Editor command (default: $VISUAL, $EDITOR, then OS opener)
# lock-attempts = %d            # Lock poll attempts
# lock-interval-seconds = %d    # Seconds between lock polls
`,
		defaultEntriesDir,
		defaultMasterFile,
		defaultLockAttempts,
		defaultLockInterval,
	)
}
