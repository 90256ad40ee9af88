package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/api"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game; all of them share one leaderboard.
With --http a read-only JSON API for the leaderboard is served as well.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                            # Listen on :23234 with auto-generated key
  snake serve --ssh :2222                # Listen on port 2222
  snake serve --http :8080               # Also serve GET /api/leaderboard
  snake --backend sqlite serve --http :8080

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (disabled if empty)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
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

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Seed:        flagSeed,
	}, cfg, store, logger.WithPrefix("ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagHTTPAddr != "" {
		opts := api.Options{Config: cfg, Store: store, Logger: logger.WithPrefix("http")}
		if history, ok := sqliteBackend(backend); ok {
			opts.History = history
		}
		httpServer := api.NewServer(flagHTTPAddr, opts)

		go func() {
			if err := httpServer.ListenAndServe(); err != nil {
				logger.Error("HTTP server stopped", "err", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx) //nolint:errcheck
		}()
	}

	logger.Info("connect with: ssh localhost -p <port>", "address", server.Addr())

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "err", err)
		return err
	}
	return nil
}
