// Package main provides the CLI entrypoint for mindtiles.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/mindtiles/internal/config"
	"github.com/verte-zerg/mindtiles/internal/logging"
	"github.com/verte-zerg/mindtiles/internal/model"
	"github.com/verte-zerg/mindtiles/internal/pattern"
	"github.com/verte-zerg/mindtiles/internal/session"
	"github.com/verte-zerg/mindtiles/internal/stats"
	"github.com/verte-zerg/mindtiles/internal/store"
	"github.com/verte-zerg/mindtiles/internal/tui"
)

const defaultStatsWindow = 10

var (
	playLevel            int
	playRoundSeconds     int
	playRounds           int
	playLives            int
	playBreakSeconds     int
	playGamesBeforeBreak int

	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultGameConfig()
	rootCmd := &cobra.Command{
		Use:           "mindtiles",
		Short:         "TUI pattern-memory trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().IntVar(&playLevel, "level", 0, "level to play (default: current level)")
	rootCmd.Flags().IntVar(&playRoundSeconds, "round-seconds", defaults.RoundSeconds, "seconds on the game clock")
	rootCmd.Flags().IntVar(&playRounds, "rounds", defaults.RoundsPerGame, "rounds per game")
	rootCmd.Flags().IntVar(&playLives, "lives", defaults.Lives, "allowed mistakes per game")
	rootCmd.Flags().IntVar(&playBreakSeconds, "break-seconds", defaults.BreakSeconds, "mandatory break duration")
	rootCmd.Flags().IntVar(&playGamesBeforeBreak, "games-before-break", defaults.GamesBeforeBreak, "consecutive games before a break")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "round-seconds", &playRoundSeconds, fileCfg.Game.RoundSeconds)
	applyIntConfig(cmd, "rounds", &playRounds, fileCfg.Game.Rounds)
	applyIntConfig(cmd, "lives", &playLives, fileCfg.Game.Lives)
	applyIntConfig(cmd, "break-seconds", &playBreakSeconds, fileCfg.Game.BreakSeconds)
	applyIntConfig(cmd, "games-before-break", &playGamesBeforeBreak, fileCfg.Game.GamesBeforeBreak)

	cfg := model.GameConfig{
		RoundSeconds:     playRoundSeconds,
		RoundsPerGame:    playRounds,
		Lives:            playLives,
		BreakSeconds:     playBreakSeconds,
		GamesBeforeBreak: playGamesBeforeBreak,
	}
	if err := validateConfig(cfg); err != nil {
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

	ctx := context.Background()
	user, err := st.LoadUser(ctx)
	if err != nil {
		return err
	}
	levels, err := st.LoadLevels(ctx)
	if err != nil {
		return fmt.Errorf("failed to load levels: %w", err)
	}

	startLevel, err := resolveStartLevel(playLevel, user, levels)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(config.DefaultLogPath())
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	coord := session.New(&user, levels, cfg)
	m := tui.NewModel(cfg, coord, st, pattern.New(), logger, startLevel)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveStartLevel picks the level the picker opens on. An explicitly
// requested level must exist and be unlocked.
func resolveStartLevel(requested int, user model.User, levels []model.Level) (int, error) {
	if requested != 0 {
		for _, lvl := range levels {
			if lvl.ID != requested {
				continue
			}
			if !lvl.Unlocked {
				return 0, fmt.Errorf("level %d is locked", requested)
			}
			return requested, nil
		}
		return 0, fmt.Errorf("unknown level %d", requested)
	}
	for _, lvl := range levels {
		if lvl.ID == user.CurrentLevel && lvl.Unlocked {
			return lvl.ID, nil
		}
	}
	for _, lvl := range levels {
		if lvl.Unlocked {
			return lvl.ID, nil
		}
	}
	return 0, fmt.Errorf("no unlocked levels")
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List levels and progress",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	levels, err := st.LoadLevels(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load levels: %w", err)
	}
	return stats.RenderLevelTable(cmd.OutOrStdout(), levels)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	user, err := st.LoadUser(ctx)
	if err != nil {
		return err
	}
	levels, err := st.LoadLevels(ctx)
	if err != nil {
		return fmt.Errorf("failed to load levels: %w", err)
	}
	games, err := st.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to load games: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, user, games); err != nil {
		return err
	}
	if err := stats.RenderLevelTable(out, levels); err != nil {
		return err
	}
	return stats.RenderScoreHistory(out, games, statsWindow, stats.TerminalWidth())
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	defaults := model.DefaultGameConfig()
	return fmt.Sprintf(`# mindtiles configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# round-seconds = %d       # Seconds on the shared game clock
# rounds = %d              # Rounds per game
# lives = %d               # Allowed mistakes per game
# break-seconds = %d      # Mandatory break duration
# games-before-break = %d  # Consecutive games before a break fires
`,
		defaults.RoundSeconds,
		defaults.RoundsPerGame,
		defaults.Lives,
		defaults.BreakSeconds,
		defaults.GamesBeforeBreak,
	)
}

func validateConfig(cfg model.GameConfig) error {
	if cfg.RoundSeconds <= 0 {
		return fmt.Errorf("--round-seconds must be > 0")
	}
	if cfg.RoundsPerGame <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}
	if cfg.Lives <= 0 {
		return fmt.Errorf("--lives must be > 0")
	}
	if cfg.BreakSeconds <= 0 {
		return fmt.Errorf("--break-seconds must be > 0")
	}
	if cfg.GamesBeforeBreak <= 0 {
		return fmt.Errorf("--games-before-break must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
