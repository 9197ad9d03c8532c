// Package main provides the CLI entrypoint for zencounter.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/zencounter/internal/config"
	"github.com/verte-zerg/zencounter/internal/deck"
	"github.com/verte-zerg/zencounter/internal/engine"
	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/settings"
	"github.com/verte-zerg/zencounter/internal/stats"
	"github.com/verte-zerg/zencounter/internal/statsui"
	"github.com/verte-zerg/zencounter/internal/store"
	"github.com/verte-zerg/zencounter/internal/tui"
)

const defaultCurveWindow = 10

var (
	trainDecks     int
	trainSpeed     float64
	trainShowValue bool
	trainShowCount bool
	trainSeed      uint64

	statsSince       string
	statsLast        int
	statsDecks       int
	statsMode        string
	statsCurveWindow int
	statsFormat      string
)

func main() {
	config.LoadEnv()
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := settings.Defaults()
	rootCmd := &cobra.Command{
		Use:           "zencounter",
		Short:         "Hi-Lo card counting trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTrainCmd,
	}

	rootCmd.Flags().IntVar(&trainDecks, "decks", defaults.NumberOfDecks, fmt.Sprintf("number of decks in the shoe (%d-%d)", settings.MinDecks, settings.MaxDecks))
	rootCmd.Flags().Float64Var(&trainSpeed, "speed", defaults.CardSpeed, fmt.Sprintf("seconds per card (%.1f-%.1f)", settings.MinSpeed, settings.MaxSpeed))
	rootCmd.Flags().BoolVar(&trainShowValue, "show-value", defaults.ShowCardValue, "show the Hi-Lo value under each card")
	rootCmd.Flags().BoolVar(&trainShowCount, "show-count", defaults.ShowRunningCount, "show the running count while dealing")
	rootCmd.Flags().Uint64Var(&trainSeed, "seed", 0, "shuffle seed for a reproducible shoe (0: random)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newReferenceCmd())

	return rootCmd
}

func runTrainCmd(cmd *cobra.Command, _ []string) error {
	holder, err := settings.NewHolder(config.NewSettingsFile(config.DefaultConfigPath()))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	next, changed := applyFlagOverrides(cmd, holder.Get())
	if changed {
		holder.Set(next)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	e := engine.New(engine.WithRand(deck.NewSource(trainSeed)))
	program := tea.NewProgram(tui.NewModel(e, holder, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// applyFlagOverrides copies explicitly set flags over the stored settings.
// Values are clamped the same way in-app adjustments are.
func applyFlagOverrides(cmd *cobra.Command, base model.Settings) (model.Settings, bool) {
	changed := false
	applyIntFlag(cmd, "decks", &base.NumberOfDecks, trainDecks, &changed)
	applyFloatFlag(cmd, "speed", &base.CardSpeed, trainSpeed, &changed)
	applyBoolFlag(cmd, "show-value", &base.ShowCardValue, trainShowValue, &changed)
	applyBoolFlag(cmd, "show-count", &base.ShowRunningCount, trainShowCount, &changed)
	return settings.Normalize(base), changed
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
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
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

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsDecks, "decks", 0, "deck count filter")
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter (practice|exam)")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsFormat, "format", "", "print instead of opening the viewer (text|yaml)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsFormat == "" {
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	out := cmd.OutOrStdout()
	switch statsFormat {
	case "text":
		return stats.RenderText(out, report, cfg.CurveWindow, stats.TerminalWidth(os.Stdout))
	case "yaml":
		return stats.RenderYAML(out, report)
	}
	return fmt.Errorf("unknown --format %q (expected text or yaml)", statsFormat)
}

func buildStatsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be > 0")
	}
	if statsDecks != 0 && (statsDecks < settings.MinDecks || statsDecks > settings.MaxDecks) {
		return model.StatsConfig{}, fmt.Errorf("--decks must be between %d and %d", settings.MinDecks, settings.MaxDecks)
	}
	mode := model.Mode(strings.ToLower(strings.TrimSpace(statsMode)))
	switch mode {
	case "", model.ModePractice, model.ModeExam:
	default:
		return model.StatsConfig{}, fmt.Errorf("invalid --mode %q (expected practice or exam)", statsMode)
	}
	return model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		Decks:       statsDecks,
		Mode:        mode,
		CurveWindow: statsCurveWindow,
	}, nil
}

func newReferenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reference",
		Short: "Print the Hi-Lo value table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), tui.RenderReference()); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int, changed *bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
	*changed = true
}

func applyFloatFlag(cmd *cobra.Command, name string, target *float64, value float64, changed *bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
	*changed = true
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool, changed *bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
	*changed = true
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
