package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List difficulty presets and leaderboard backends",
	Long:  `Shows the difficulty presets from the loaded config and the registered leaderboard backends.`,
	Args:  cobra.NoArgs,
	RunE:  runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printDifficulties(os.Stdout, cfg, registry.List())
	return nil
}

func printDifficulties(w io.Writer, cfg config.SnakeConfig, backends []registry.BackendInfo) {
	fmt.Fprintln(w, "Difficulties:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-8s  %-6s  %-6s  %s\n", "Name", "Speed", "Bonus", "Obstacles")
	fmt.Fprintf(w, "  %-8s  %-6s  %-6s  %s\n", "----", "-----", "-----", "---------")
	for _, p := range config.Presets() {
		s := cfg.Settings(p)
		obstacles := "none"
		if s.Obstacles.Enabled() {
			obstacles = fmt.Sprintf("%d x %dx%d", s.Obstacles.Count, s.Obstacles.Width, s.Obstacles.Height)
		}
		fmt.Fprintf(w, "  %-8s  %-6d  %-6s  %s\n", p, s.Speed, fmt.Sprintf("%.0f%%", s.RedProbability*100), obstacles)
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		if len(b.Name) > maxNameLen {
			maxNameLen = len(b.Name)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Leaderboard backends:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-*s  %-28s  %s\n", maxNameLen, "Name", "Default path", "Description")
	fmt.Fprintf(w, "  %-*s  %-28s  %s\n", maxNameLen, "----", "------------", "-----------")
	for _, b := range backends {
		fmt.Fprintf(w, "  %-*s  %-28s  %s\n", maxNameLen, b.Name, b.DefaultPath, b.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'snake play --difficulty <name>' to skip the menus.")
}
