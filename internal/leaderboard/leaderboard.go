// Package leaderboard keeps the persistent top-N table of finished games.
// Storage is pluggable through Backend; the Store adds ranking, truncation
// and the degrade-to-empty policy on top of it.
package leaderboard

import (
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// TimeLayout is the stored timestamp format: ISO-8601 UTC with microseconds.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// DefaultSize is the number of entries kept when no size is configured.
const DefaultSize = 10

// Entry is one leaderboard row.
type Entry struct {
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
	Time       string `json:"time"`
}

// DisplayTime returns the timestamp trimmed to "YYYY-MM-DD HH:MM:SS".
func (e Entry) DisplayTime() string {
	t := strings.Replace(e.Time, "T", " ", 1)
	if len(t) > 19 {
		t = t[:19]
	}
	return t
}

// Backend persists the whole table. Load on an absent store returns an empty
// slice and no error.
type Backend interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
	Close() error
}

// HistoryRecorder is implemented by backends that also keep every game
// ever played, not only the top N.
type HistoryRecorder interface {
	AppendHistory(e Entry) error
}

// Option configures a Store.
type Option func(*Store)

// WithSize sets the maximum number of kept entries.
func WithSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.size = n
		}
	}
}

// WithNow replaces the clock used to stamp new entries.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for I/O failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store ranks and persists finished games. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	backend Backend
	size    int
	now     func() time.Time
	logger  *log.Logger
}

// NewStore creates a store over backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		size:    DefaultSize,
		now:     time.Now,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the maximum number of kept entries.
func (s *Store) Size() int {
	return s.size
}

// Load returns the current table. Missing or unreadable storage yields an
// empty table.
func (s *Store) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Entry {
	entries, err := s.backend.Load()
	if err != nil {
		s.logger.Warn("leaderboard unreadable, starting empty", "err", err)
		return []Entry{}
	}
	for i := range entries {
		entries[i].Difficulty = string(config.NormalizeDifficulty(entries[i].Difficulty))
	}
	return entries
}

// Save writes entries. Failures are logged and dropped.
func (s *Store) Save(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(entries)
}

func (s *Store) save(entries []Entry) {
	if err := s.backend.Save(entries); err != nil {
		s.logger.Error("leaderboard save failed", "err", err)
	}
}

// RecordScore inserts a finished game, keeps the best entries and returns
// the 0-based rank of the new entry. ok is false when the entry did not
// make the table.
func (s *Store) RecordScore(score int, difficulty config.DifficultyPreset) (rank int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		Score:      score,
		Difficulty: string(config.NormalizeDifficulty(string(difficulty))),
		Time:       s.now().UTC().Format(TimeLayout),
	}

	if h, isRecorder := s.backend.(HistoryRecorder); isRecorder {
		if err := h.AppendHistory(entry); err != nil {
			s.logger.Warn("score history append failed", "err", err)
		}
	}

	entries := append(s.load(), entry)
	newIdx := len(entries) - 1

	// Track the new entry through the sort by its slice position so equal
	// (score, time) pairs already on the board cannot be mistaken for it.
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return entries[order[i]].Score > entries[order[j]].Score
	})
	if len(order) > s.size {
		order = order[:s.size]
	}

	ranked := make([]Entry, len(order))
	rank = -1
	for i, idx := range order {
		ranked[i] = entries[idx]
		if idx == newIdx {
			rank = i
		}
	}

	s.save(ranked)
	s.logger.Debug("score recorded", "score", score, "difficulty", entry.Difficulty, "rank", rank)

	if rank < 0 {
		return 0, false
	}
	return rank, true
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
