package session

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
)

// View is a read-only snapshot of the session for rendering.
type View struct {
	State      State
	Difficulty config.DifficultyPreset
	Cursor     int // Highlighted preset on the difficulty page

	Game    snake.Snapshot // Valid while HasGame
	HasGame bool

	Outcome snake.Outcome
	Rank    int // Rank of the last game on Board, valid when Ranked
	Ranked  bool

	Board         []leaderboard.Entry
	LockRemaining time.Duration
}

// Countdown returns the whole seconds shown while the leaderboard is
// locked, counting down to 1.
func (v View) Countdown() int {
	if v.LockRemaining <= 0 {
		return 0
	}
	return int((v.LockRemaining + time.Second - 1) / time.Second)
}

// View returns the current snapshot.
func (s *Session) View() View {
	v := View{
		State:      s.state,
		Difficulty: s.difficulty,
		Cursor:     s.cursor,
		Outcome:    s.outcome,
		Rank:       s.rank,
		Ranked:     s.ranked,
	}
	if s.game != nil {
		v.Game = s.game.Snapshot()
		v.HasGame = true
	}
	if s.state == StateLeaderboard {
		v.Board = append([]leaderboard.Entry(nil), s.board...)
		if remaining := s.lockUntil.Sub(s.now()); remaining > 0 {
			v.LockRemaining = remaining
		}
	}
	return v
}
