package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestLeaderboardSaveLoad(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Expected empty leaderboard, got %d", len(entries))
	}

	board := []leaderboard.Entry{
		{Score: 200, Difficulty: "hard", Time: "2024-01-01T00:00:02.000000Z"},
		{Score: 100, Difficulty: "easy", Time: "2024-01-01T00:00:01.000000Z"},
	}
	if err := store.Save(board); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// A second save replaces, not appends.
	board = append(board[:1], leaderboard.Entry{Score: 150, Difficulty: "normal", Time: "2024-01-01T00:00:03.000000Z"})
	if err := store.Save(board); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	entries, err = store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0] != board[0] || entries[1] != board[1] {
		t.Errorf("Loaded %+v, want %+v", entries, board)
	}
}

func TestLeaderboardStoreOverSQLite(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lb := leaderboard.NewStore(store, leaderboard.WithSize(3), leaderboard.WithNow(func() time.Time {
		now = now.Add(time.Minute)
		return now
	}))

	for _, score := range []int{30, 10, 50, 20} {
		lb.RecordScore(score, config.DifficultyNormal)
	}

	entries := lb.Load()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 leaderboard entries, got %d", len(entries))
	}
	if entries[0].Score != 50 || entries[2].Score != 20 {
		t.Errorf("Unexpected leaderboard %+v", entries)
	}

	history, err := store.RecentScores(0)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("Expected every game in history, got %d", len(history))
	}
	if history[0].Score != 20 {
		t.Errorf("Expected newest game first, got %d", history[0].Score)
	}
	if history[0].PlayedAt.IsZero() {
		t.Error("PlayedAt was not parsed")
	}
}

func TestTopScores(t *testing.T) {
	store := openTestStore(t)
	for i, diff := range []string{"easy", "hard", "easy", "normal", "easy"} {
		store.AppendHistory(leaderboard.Entry{Score: (i + 1) * 10, Difficulty: diff, Time: "2024-01-01T00:00:00.000000Z"}) //nolint:errcheck
	}

	easy, err := store.TopScores("easy", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(easy) != 2 || easy[0].Score != 50 || easy[1].Score != 30 {
		t.Errorf("Unexpected easy top scores %+v", easy)
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 || all[0].Score != 50 {
		t.Errorf("Unexpected overall top scores %+v", all)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats("hard")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.AppendHistory(leaderboard.Entry{Score: 40, Difficulty: "hard", Time: "2024-01-01T00:00:00.000000Z"}) //nolint:errcheck
	store.AppendHistory(leaderboard.Entry{Score: 80, Difficulty: "hard", Time: "2024-01-02T00:00:00.000000Z"}) //nolint:errcheck
	store.AppendHistory(leaderboard.Entry{Score: 10, Difficulty: "easy", Time: "2024-01-03T00:00:00.000000Z"}) //nolint:errcheck

	stats, err = store.Stats("hard")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 80 || stats.AvgScore != 60 || stats.TotalScore != 120 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC); !stats.LastPlayed.Equal(want) {
		t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, want)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["easy"].GamesCount != 1 {
		t.Errorf("Unexpected AllStats %+v", all)
	}
}

func TestClearHistory(t *testing.T) {
	store := openTestStore(t)
	store.AppendHistory(leaderboard.Entry{Score: 5, Difficulty: "easy", Time: "2024-01-01T00:00:00.000000Z"}) //nolint:errcheck
	store.Save([]leaderboard.Entry{{Score: 5, Difficulty: "easy", Time: "2024-01-01T00:00:00.000000Z"}})   //nolint:errcheck

	if err := store.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}

	history, _ := store.RecentScores(10)
	if len(history) != 0 {
		t.Errorf("Expected empty history, got %d", len(history))
	}
	board, _ := store.Load()
	if len(board) != 1 {
		t.Errorf("ClearHistory should keep the leaderboard, got %d entries", len(board))
	}
}

func TestRegistered(t *testing.T) {
	b, err := registry.Create(Name, filepath.Join(t.TempDir(), "reg.db"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer b.Close()
	if _, ok := b.(*Store); !ok {
		t.Errorf("Expected *Store, got %T", b)
	}
}

func TestBusyTimeoutIsSet(t *testing.T) {
	store := openTestStore(t)

	var ms int64
	if err := store.db.QueryRow(`PRAGMA busy_timeout`).Scan(&ms); err != nil {
		t.Fatalf("PRAGMA busy_timeout failed: %v", err)
	}
	if ms != busyTimeout.Milliseconds() {
		t.Errorf("busy_timeout = %d, want %d", ms, busyTimeout.Milliseconds())
	}
}

func TestReadsDuringConcurrentWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shared.db")
	writer, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer writer.Close()
	reader, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer reader.Close()

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 50; i++ {
			e := leaderboard.Entry{Score: i, Difficulty: "hard", Time: "2024-01-01T00:00:00.000000Z"}
			if err := writer.Save([]leaderboard.Entry{e}); err != nil {
				done <- err
				return
			}
			if err := writer.AppendHistory(e); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for _i := 0; _i < 50; _i++ {
		if _, err := reader.RecentScores(10); err != nil {
			t.Fatalf("RecentScores() during writes failed: %v", err)
		}
		if _, err := reader.AllStats(); err != nil {
			t.Fatalf("AllStats() during writes failed: %v", err)
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("writer failed: %v", err)
	}
}
