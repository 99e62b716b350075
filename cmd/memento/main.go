// Package main provides the CLI entrypoint for memento.
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

	"github.com/verte-zerg/memento/internal/config"
	"github.com/verte-zerg/memento/internal/lifespan"
	"github.com/verte-zerg/memento/internal/model"
	"github.com/verte-zerg/memento/internal/stats"
	"github.com/verte-zerg/memento/internal/store"
	"github.com/verte-zerg/memento/internal/tui"
)

const (
	defaultGridWidth     = 1.0
	defaultFormat        = stats.FormatText
	defaultJournalWindow = 3
	defaultPlotHeight    = 8
)

var (
	verbose bool
	logger  = zap.NewNop()

	rootBirth     string
	rootNoJournal bool
	rootColor     bool
	rootGridWidth float64

	showBirth  string
	showFormat string
	showGrid   bool
	showAt     string
	showColor  bool

	journalBirth  string
	journalSince  string
	journalLast   int
	journalWindow int
	journalClear  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "memento",
		Short:             "Your life in weeks",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: initLogger,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			// Best-effort flush; stderr sync fails on some terminals.
			_ = logger.Sync()
		},
		RunE: runInteractiveCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().StringVar(&rootBirth, "birth", "", "birth date (YYYY-MM-DD); skips the form")
	rootCmd.Flags().BoolVar(&rootNoJournal, "no-journal", false, "do not record snapshots")
	rootCmd.Flags().BoolVar(&rootColor, "color", false, "force colored plots")
	rootCmd.Flags().Float64Var(&rootGridWidth, "grid-width", defaultGridWidth, "share of the terminal used for text content (0-1]")

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newMilestonesCmd())
	rootCmd.AddCommand(newJournalCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// initLogger logs to a file for the interactive command so the alternate
// screen stays clean, and to stderr for everything else.
func initLogger(cmd *cobra.Command, _ []string) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if cmd == cmd.Root() {
		path := config.DefaultLogPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

func runInteractiveCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	journal := true
	applyBoolConfig(cmd, "no-journal", &journal, fileCfg.Memento.Journal)
	if cmd.Flags().Changed("no-journal") {
		journal = !rootNoJournal
	}
	applyBoolConfig(cmd, "color", &rootColor, fileCfg.Memento.Color)
	applyFloatConfig(cmd, "grid-width", &rootGridWidth, fileCfg.Memento.GridWidth)
	applyStringConfig(cmd, "birth", &rootBirth, fileCfg.Memento.BirthDate)

	cfg := model.Config{
		BirthDate: strings.TrimSpace(rootBirth),
		Journal:   journal,
		Color:     rootColor,
		GridWidth: rootGridWidth,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	var st *store.Store
	if cfg.Journal {
		st, err = openStore()
		if err != nil {
			return err
		}
		defer closeStore(st)
	}

	m := tui.NewModel(cfg, st, logger, time.Now)
	if cmd.Flags().Changed("birth") {
		m.Submit()
	}
	logger.Debug("starting interactive session", zap.Bool("journal", cfg.Journal), zap.String("birth_date", cfg.BirthDate))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print life stats for a birth date",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
	cmd.Flags().StringVar(&showBirth, "birth", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&showFormat, "format", defaultFormat, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&showGrid, "grid", false, "append the week grid (text format only)")
	cmd.Flags().StringVar(&showAt, "at", "", "compute as of this date (YYYY-MM-DD) instead of now")
	cmd.Flags().BoolVar(&showColor, "color", false, "color the week grid")
	return cmd
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "birth", &showBirth, fileCfg.Memento.BirthDate)
	applyBoolConfig(cmd, "color", &showColor, fileCfg.Memento.Color)

	if strings.TrimSpace(showBirth) == "" {
		return fmt.Errorf("--birth is required (or set birth-date in %s)", config.DefaultConfigPath())
	}
	format := strings.ToLower(strings.TrimSpace(showFormat))
	switch format {
	case stats.FormatText, stats.FormatJSON, stats.FormatYAML:
	default:
		return fmt.Errorf("--format must be one of text, json, yaml")
	}

	now := time.Now()
	if showAt != "" {
		parsed, err := time.ParseInLocation(stats.BirthDateLayout, showAt, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
		now = parsed
	}

	s, err := stats.DeriveString(showBirth, now)
	if err != nil {
		return err
	}
	logger.Debug("derived stats",
		zap.String("birth_date", showBirth),
		zap.Time("at", now),
		zap.Int64("lived_weeks", s.LivedWeeks),
	)

	out := cmd.OutOrStdout()
	if err := stats.Encode(out, s, format); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if showGrid && format == stats.FormatText {
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderGrid(out, s.LivedWeeks, stats.GridOptions{Color: showColor, YearLabels: true}); err != nil {
			return fmt.Errorf("failed to write grid: %w", err)
		}
	}
	return nil
}

func newMilestonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "milestones",
		Short: "List the life stages on the week grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := stats.RenderGlossary(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recorded snapshots",
		Args:  cobra.NoArgs,
		RunE:  runJournalCmd,
	}
	cmd.Flags().StringVar(&journalBirth, "birth", "", "birth date filter (YYYY-MM-DD)")
	cmd.Flags().StringVar(&journalSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&journalLast, "last", 0, "limit to last N snapshots")
	cmd.Flags().IntVar(&journalWindow, "window", defaultJournalWindow, "moving average window for curves")
	cmd.Flags().BoolVar(&journalClear, "clear", false, "delete snapshots (for --birth, or all)")
	return cmd
}

func runJournalCmd(cmd *cobra.Command, _ []string) error {
	if journalLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if journalWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	if journalBirth != "" {
		if _, err := stats.ParseBirthDate(journalBirth); err != nil {
			return err
		}
	}
	var sinceTime *time.Time
	if journalSince != "" {
		parsed, err := time.ParseInLocation(stats.BirthDateLayout, journalSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	out := cmd.OutOrStdout()
	if journalClear {
		n, err := st.DeleteSnapshots(ctx, journalBirth)
		if err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		logger.Info("journal cleared", zap.Int64("deleted", n), zap.String("birth_date", journalBirth))
		if _, err := fmt.Fprintf(out, "Deleted %d snapshots.\n", n); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	filter := model.JournalFilter{
		BirthDate:   journalBirth,
		Since:       sinceTime,
		Last:        journalLast,
		CurveWindow: journalWindow,
	}
	journal, err := stats.BuildJournal(ctx, st, filter)
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	if err := stats.RenderJournalTable(out, journal.Snapshots); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(journal.Snapshots) > 1 {
		if err := stats.RenderJournalCurves(out, journal.Snapshots, filter.CurveWindow, 0, defaultPlotHeight, false); err != nil {
			return fmt.Errorf("failed to write curves: %w", err)
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
	if err := writeDefaultConfig(path); err != nil {
		return err
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

// writeDefaultConfig creates the commented template unless a config exists.
func writeDefaultConfig(path string) error {
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
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logger.Warn("failed to close db", zap.Error(err))
	}
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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
	return fmt.Sprintf(`# memento configuration
# Uncomment a value to enable it. CLI flags override config values.

[memento]
# birth-date = "1990-05-17"   # Pre-fills the form and is the default for "show"
# journal = true              # Record a snapshot each time stats are shown
# color = false               # Force colored plots and grids
# grid-width = %.1f            # Share of the terminal used for text content (0-1]

# A full life here is %d weeks (%d years of %d weeks).
`,
		defaultGridWidth,
		lifespan.TotalWeeks,
		lifespan.ExpectancyYears,
		lifespan.WeeksInYear,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.GridWidth <= 0 || cfg.GridWidth > 1 {
		return fmt.Errorf("--grid-width must be > 0 and <= 1")
	}
	if cfg.BirthDate != "" {
		if _, err := stats.ParseBirthDate(cfg.BirthDate); err != nil {
			return err
		}
	}
	return nil
}
