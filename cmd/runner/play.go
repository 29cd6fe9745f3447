package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Start a run",
	Long: `Start playing right away with the configured difficulty.

Controls:
  A/Left, D/Right  - Switch lane
  Space/W/Up       - Jump
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, gentle acceleration, sparse obstacles
  normal - Config values as written
  hard   - Fast start, steep acceleration, crowded lanes
  fixed  - Constant speed, no progression

The config file in use is watched; saved changes apply from the next run.

Examples:
  runner play
  runner play --difficulty hard
  runner play --seed 42
  runner play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := runner.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'runner list' to see available games)", err)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	watcher := startWatcher()
	if watcher != nil {
		defer watcher.Close()
	}

	logger.Info("run started", "game", gameID, "difficulty", difficulty(), "seed", flagSeed)
	if err := tui.Run(game, cfg, tui.ModelOptions{
		Store:   store,
		Logger:  logger,
		Watcher: watcher,
	}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
