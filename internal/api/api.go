// Package api serves the leaderboard read-only over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// History is served when the leaderboard backend keeps every game.
type History interface {
	RecentScores(limit int) ([]storage.ScoreEntry, error)
	AllStats() (map[string]*storage.DifficultyStats, error)
}

// RankedEntry is a leaderboard row with its 1-based rank.
type RankedEntry struct {
	Rank int `json:"rank"`
	leaderboard.Entry
}

// DifficultyInfo describes one selectable preset.
type DifficultyInfo struct {
	Name           string  `json:"name"`
	Label          string  `json:"label"`
	Speed          int     `json:"speed"`
	RedProbability float64 `json:"red_probability"`
	ObstacleBlocks int     `json:"obstacle_blocks"`
}

// Options configures the router.
type Options struct {
	Config  config.SnakeConfig
	Store   *leaderboard.Store
	History History // Optional
	Logger  *log.Logger
}

// NewRouter builds the HTTP handler.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/leaderboard", LeaderboardHandler(opts.Store))
	router.GET("/api/difficulties", DifficultiesHandler(opts.Config))
	if opts.History != nil {
		router.GET("/api/history", HistoryHandler(opts.History))
		router.GET("/api/stats", StatsHandler(opts.History))
	}
	return router
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// LeaderboardHandler returns the board, optionally filtered by
// ?difficulty= and cut to ?limit=. Ranks always refer to the full board.
func LeaderboardHandler(store *leaderboard.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := queryLimit(c, store.Size())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := c.Query("difficulty")
		if filter != "" && filter != string(config.DifficultyUnknown) {
			p, err := config.ParseDifficulty(filter)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter = string(p)
		}

		entries := []RankedEntry{}
		for i, e := range store.Load() {
			if filter != "" && e.Difficulty != filter {
				continue
			}
			if len(entries) == limit {
				break
			}
			entries = append(entries, RankedEntry{Rank: i + 1, Entry: e})
		}

		c.JSON(http.StatusOK, gin.H{"size": store.Size(), "entries": entries})
	}
}

// DifficultiesHandler lists the selectable presets.
func DifficultiesHandler(cfg config.SnakeConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		infos := make([]DifficultyInfo, 0, len(config.Presets()))
		for _, p := range config.Presets() {
			s := cfg.Settings(p)
			infos = append(infos, DifficultyInfo{
				Name:           string(p),
				Label:          p.Label(),
				Speed:          s.Speed,
				RedProbability: s.RedProbability,
				ObstacleBlocks: s.Obstacles.Count,
			})
		}
		c.JSON(http.StatusOK, infos)
	}
}

// HistoryHandler returns the latest games.
func HistoryHandler(h History) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := queryLimit(c, 20)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		scores, err := h.RecentScores(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
			return
		}

		out := make([]gin.H, 0, len(scores))
		for _, s := range scores {
			out = append(out, gin.H{
				"score":      s.Score,
				"difficulty": s.Difficulty,
				"played_at":  s.PlayedAt.Format(time.RFC3339),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// StatsHandler returns aggregated statistics per difficulty.
func StatsHandler(h History) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := h.AllStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
			return
		}

		out := make(map[string]gin.H, len(stats))
		for name, s := range stats {
			out[name] = gin.H{
				"games":       s.GamesCount,
				"high_score":  s.HighScore,
				"avg_score":   s.AvgScore,
				"total_score": s.TotalScore,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func queryLimit(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}
	return n, nil
}

// Server wraps the router in an http.Server with graceful shutdown.
type Server struct {
	srv    *http.Server
	logger *log.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: opts.Logger,
	}
}

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	if s.logger != nil {
		s.logger.Info("Starting HTTP server", "addr", s.srv.Addr)
	}
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: listen %s: %w", s.srv.Addr, err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
