// snake is a terminal snake game with a persistent leaderboard.
//
// Usage:
//
//	snake play               - Play locally
//	snake serve              - Serve the game over SSH (and optionally HTTP)
//	snake scores             - Show the leaderboard
//	snake difficulties       - List difficulty presets and backends
//
// Global flags:
//
//	--config <path>       - Custom snake.yaml
//	--seed <value>        - RNG seed for reproducible games
//	--backend <name>      - Leaderboard backend: json or sqlite
//	--leaderboard <path>  - Leaderboard location (backend default if empty)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file while playing
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/leaderboard/jsonfile"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig      string
	flagSeed        int64
	flagBackend     string
	flagLeaderboard string
	flagLogLevel    string
	flagLogFile     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - eat, grow, don't hit the walls",
	Long: `Snake is a classic snake game for the terminal.

Eat red and green items to grow and score, avoid the walls, the grey
obstacles and your own tail. The best ten games are kept on a leaderboard.

Available commands:
  play          - Play in this terminal
  serve         - Start SSH server for remote play
  scores        - View the leaderboard
  difficulties  - List difficulty presets

Examples:
  snake play
  snake play --difficulty hard
  snake serve --ssh :2222 --http :8080
  snake scores --watch
  snake --backend sqlite scores --history`,
	// main prints the error; usage is only shown for flag errors
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cmd.SilenceUsage = true
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", jsonfile.Name, "Leaderboard backend (json, sqlite)")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboard, "leaderboard", "", "Leaderboard path (backend default if empty)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (play discards logs if empty)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(difficultiesCmd)
}

// newLogger builds the command logger. Without --log-file it writes to
// fallback; the returned closer releases the log file if one was opened.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() } //nolint:errcheck
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	return cfg, nil
}

// openBoard opens the selected backend and wraps it in a leaderboard store.
// The backend is returned too so commands can reach backend-only features.
func openBoard(cfg config.SnakeConfig, logger *log.Logger) (*leaderboard.Store, leaderboard.Backend, error) {
	if !registry.Exists(flagBackend) {
		return nil, nil, fmt.Errorf("unknown backend %q (run 'snake difficulties' to list them)", flagBackend)
	}
	backend, err := registry.Create(flagBackend, flagLeaderboard)
	if err != nil {
		return nil, nil, err
	}
	store := leaderboard.NewStore(backend,
		leaderboard.WithSize(cfg.Leaderboard.Size),
		leaderboard.WithLogger(logger),
	)
	return store, backend, nil
}

// sqliteBackend returns the SQLite backend when it is the one in use.
func sqliteBackend(b leaderboard.Backend) (*storage.Store, bool) {
	s, ok := b.(*storage.Store)
	return s, ok
}
