package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a local game.

Controls:
  Space/Enter  - Start / confirm / back to difficulty after the leaderboard
  1/2/3        - Pick easy, normal or hard
  Arrows/WASD  - Steer
  Ctrl+S       - Save a screenshot to ~/.snake/screenshots
  Esc/Q        - Quit

Difficulty options:
  easy    - Slow, bonus items are more frequent
  normal  - Medium speed
  hard    - Fast, with obstacle blocks on the field

Examples:
  snake play
  snake play --difficulty hard
  snake play --seed 42 --log-file snake.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Skip the menus and start on this preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) error {
	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		p, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		preset = p
	}

	// The TUI owns the terminal, so logs are dropped unless --log-file is set
	logger, closeLog, err := newLogger("snake", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, _, err := openBoard(cfg, logger)
	if err != nil {
		return fmt.Errorf("could not open leaderboard: %w", err)
	}
	defer store.Close() //nolint:errcheck

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	sess := session.New(cfg, store,
		session.WithLogger(logger),
		session.WithSeed(flagSeed),
	)
	if preset != "" {
		if err := sess.Fire(session.EventStart); err != nil {
			return err
		}
		if err := sess.Select(preset); err != nil {
			return err
		}
	}

	if err := tui.Run(sess, width, height, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
