package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty, play and browse scores",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to choose a difficulty and Enter to play.
Press Tab for the scoreboard. When a run is paused or over, B/Esc
returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	watcher := startWatcher()
	if watcher != nil {
		defer watcher.Close()
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	err := tui.RunSession(cfg, tui.SessionOptions{
		Store:      store,
		Logger:     logger,
		Watcher:    watcher,
		ConfigPath: flagConfig,
		Difficulty: difficulty(),
	})
	if err != nil {
		return fmt.Errorf("error running menu: %w", err)
	}
	return nil
}
