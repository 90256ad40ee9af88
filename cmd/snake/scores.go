package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/leaderboard/jsonfile"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagWatch            bool
	flagHistory          bool
	flagStats            bool
	flagLimit            int
	flagScoresDifficulty string
	flagClearHistory     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard.

--watch reprints the board whenever the JSON leaderboard file changes, which
is handy next to a running "snake serve". --history and --stats read the
score history kept by the sqlite backend.

Examples:
  snake scores
  snake scores --watch
  snake --backend sqlite scores --history --limit 20
  snake --backend sqlite scores --history --difficulty hard
  snake --backend sqlite scores --stats
  snake --backend sqlite scores --clear-history`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reprint when the leaderboard file changes (json backend)")
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "Show recent games (sqlite backend)")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-difficulty statistics (sqlite backend)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games shown by --history")
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "With --history/--stats: best games and stats of one difficulty")
	scoresCmd.Flags().BoolVar(&flagClearHistory, "clear-history", false, "Delete the score history (sqlite backend)")
}

func runScores(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("snake", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, backend, err := openBoard(cfg, logger)
	if err != nil {
		return fmt.Errorf("could not open leaderboard: %w", err)
	}
	defer store.Close() //nolint:errcheck

	if flagHistory || flagStats || flagClearHistory {
		db, ok := sqliteBackend(backend)
		if !ok {
			return fmt.Errorf("--history, --stats and --clear-history need --backend %s", storage.Name)
		}
		return runHistory(os.Stdout, db)
	}

	printBoard(os.Stdout, store.Load())

	if !flagWatch {
		return nil
	}

	file, ok := backend.(*jsonfile.Backend)
	if !ok {
		return fmt.Errorf("--watch needs --backend %s", jsonfile.Name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchFile(ctx, file.Path(), func() {
		fmt.Println()
		printBoard(os.Stdout, store.Load())
	})
}

func runHistory(w io.Writer, db *storage.Store) error {
	var difficulty config.DifficultyPreset
	if flagScoresDifficulty != "" {
		p, err := config.ParseDifficulty(flagScoresDifficulty)
		if err != nil {
			return err
		}
		difficulty = p
	}

	if flagClearHistory {
		if err := db.ClearHistory(); err != nil {
			return err
		}
		fmt.Fprintln(w, "Score history cleared.")
		return nil
	}
	if flagHistory {
		if err := printHistory(w, db, difficulty, flagLimit); err != nil {
			return err
		}
	}
	if flagStats {
		if flagHistory {
			fmt.Fprintln(w)
		}
		return printStats(w, db, difficulty)
	}
	return nil
}

// printBoard writes the leaderboard as a plain table.
func printBoard(w io.Writer, entries []leaderboard.Entry) {
	fmt.Fprintln(w, "Leaderboard")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'snake play' to set the first high score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-10s  %s\n", "Rank", "Score", "Difficulty", "Time")
	fmt.Fprintf(w, "  %-4s  %-8s  %-10s  %s\n", "----", "-----", "----------", "----")
	for i, e := range entries {
		label := config.NormalizeDifficulty(e.Difficulty).Label()
		fmt.Fprintf(w, "  %-4d  %-8d  %-10s  %s\n", i+1, e.Score, label, e.DisplayTime())
	}
}

// printHistory lists the latest games, or the best games of one difficulty
// when difficulty is set.
func printHistory(w io.Writer, db *storage.Store, difficulty config.DifficultyPreset, limit int) error {
	title := "Recent games"
	var scores []storage.ScoreEntry
	var err error
	if difficulty != "" {
		title = "Best games - " + difficulty.Label()
		scores, err = db.TopScores(string(difficulty), limit)
	} else {
		scores, err = db.RecentScores(limit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, title)
	fmt.Fprintln(w)
	if len(scores) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-8s  %-10s  %s\n", "Score", "Difficulty", "Played")
	fmt.Fprintf(w, "  %-8s  %-10s  %s\n", "-----", "----------", "------")
	for _, s := range scores {
		label := config.NormalizeDifficulty(s.Difficulty).Label()
		fmt.Fprintf(w, "  %-8d  %-10s  %s\n", s.Score, label, s.PlayedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printStats(w io.Writer, db *storage.Store, difficulty config.DifficultyPreset) error {
	var stats map[string]*storage.DifficultyStats
	if difficulty != "" {
		s, err := db.Stats(string(difficulty))
		if err != nil {
			return err
		}
		stats = map[string]*storage.DifficultyStats{}
		if s.GamesCount > 0 {
			stats[s.Difficulty] = s
		}
	} else {
		all, err := db.AllStats()
		if err != nil {
			return err
		}
		stats = all
	}

	fmt.Fprintln(w, "Statistics")
	fmt.Fprintln(w)
	if len(stats) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		return nil
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "  %-10s  %-6s  %-6s  %-8s  %s\n", "Difficulty", "Games", "Best", "Average", "Last played")
	fmt.Fprintf(w, "  %-10s  %-6s  %-6s  %-8s  %s\n", "----------", "-----", "----", "-------", "-----------")
	for _, k := range keys {
		s := stats[k]
		label := config.NormalizeDifficulty(s.Difficulty).Label()
		fmt.Fprintf(w, "  %-10s  %-6d  %-6d  %-8.1f  %s\n",
			label, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// watchFile calls onChange each time path is written or replaced, until
// ctx is done. The parent directory is watched because atomic saves
// rename a temp file over path.
func watchFile(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}
