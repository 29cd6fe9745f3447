// Package runner implements a three-lane endless runner.
// The player runs forward automatically, swaps lanes and jumps to avoid
// obstacles on procedurally generated track. Components talk through a
// per-game event bus.
package runner

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/events"
	"github.com/vovakirdan/lane-runner/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "runner"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var defaultLogger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by games created with New.
func SetLogger(l *log.Logger) {
	defaultLogger = l
}

// Options configures a game instance without touching package state.
type Options struct {
	Config     *config.RunnerConfig // Used as-is when set; otherwise loaded from ConfigPath
	ConfigPath string
	Difficulty config.DifficultyPreset
	Logger     *log.Logger
}

// Game wires clock, player, world and HUD together over one event bus.
type Game struct {
	opts       Options
	logger     *log.Logger
	runtime    core.RuntimeConfig
	cfg        config.RunnerConfig
	difficulty config.DifficultyPreset
	pending    *config.RunnerConfig
	runs       int

	bus    *events.Bus
	clock  *Clock
	player *Player
	world  *World
	hud    *HUD
	stats  *statsTracker
}

// New creates a game using the package-level config path, preset and logger.
func New() *Game {
	return NewWithOptions(Options{
		ConfigPath: configPath,
		Difficulty: difficultyPreset,
		Logger:     defaultLogger,
	})
}

// NewWithOptions creates a game with explicit settings.
func NewWithOptions(opts Options) *Game {
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyNormal
	}
	return &Game{
		opts:       opts,
		logger:     orDiscard(opts.Logger).WithPrefix(GameID),
		difficulty: opts.Difficulty,
	}
}

// orDiscard returns l, or a logger that drops everything when l is nil.
func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Runner"
}

// Reset loads configuration, rebuilds every component and starts a run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.runs = 0
	g.cfg = g.loadConfig()
	g.pending = nil
	g.build()
	g.clock.Start()
}

func (g *Game) loadConfig() config.RunnerConfig {
	var cfg config.RunnerConfig
	if g.opts.Config != nil {
		cfg = g.opts.Config.Clone()
		if err := cfg.Validate(); err != nil {
			g.logger.Warn("invalid config, using defaults", "error", err)
			cfg = config.DefaultRunnerConfig()
		}
	} else {
		loaded, src, err := config.LoadRunner(g.opts.ConfigPath, g.logger)
		if err != nil {
			g.logger.Warn("config load failed, using defaults", "error", err)
			loaded = config.DefaultRunnerConfig()
		} else {
			g.logger.Debug("config loaded", "source", src)
		}
		cfg = loaded
	}
	return config.ApplyPreset(cfg, g.difficulty)
}

// build replaces the bus and every component for the current config.
func (g *Game) build() {
	g.close()

	g.bus = events.New()
	g.clock = NewClock(g.bus, g.cfg.Clock, g.logger)
	g.player = NewPlayer(g.bus, g.cfg.Player, g.cfg.Clock.BaseSpeed, g.logger)
	g.world = NewWorld(g.bus, g.cfg.World, g.cfg.Player.LaneCount(), g.seed(), g.logger)
	g.hud = NewHUD(g.bus)
	g.stats = newStatsTracker(g.bus)
}

// seed returns the world seed for the current run. Each restart advances it
// so runs differ while staying reproducible from the runtime seed.
func (g *Game) seed() int64 {
	return g.runtime.Seed + int64(g.runs)
}

// ApplyConfig stores cfg to be used from the next restart on.
// The preset chosen for this game is applied on top.
func (g *Game) ApplyConfig(cfg config.RunnerConfig) {
	next := config.ApplyPreset(cfg, g.difficulty)
	g.pending = &next
	g.logger.Info("config reloaded, applies on next run")
}

// restart begins a new run, switching to a pending config if one exists.
func (g *Game) restart() {
	g.runs++
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
		g.build()
		g.clock.Start()
		return
	}
	g.world.SetSeed(g.seed())
	g.clock.Restart()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := g.runtime.TickSeconds()
	wasOver := g.clock.IsOver()

	if in.Has(core.ActionPause) {
		if g.clock.IsPaused() {
			g.clock.Resume()
		} else {
			g.clock.Pause()
		}
	}

	if g.clock.IsRunning() {
		switch {
		case in.Has(core.ActionLeft):
			g.player.MoveLeft()
		case in.Has(core.ActionRight):
			g.player.MoveRight()
		}
		if in.Has(core.ActionJump) {
			g.player.Jump()
		}
	}

	g.clock.Tick(dt)
	if g.clock.IsRunning() {
		g.player.Advance(dt, g.clock.Speed())
		g.world.Extend(g.player.Z())
		g.world.Collide(g.player)
		g.world.Reclaim(g.player.Z())
	}

	// Only a game that was already over when the tick began can restart,
	// so the death tick is always reported.
	restarted := false
	if wasOver && g.clock.IsOver() {
		if in.Has(core.ActionRestart) || g.clock.AdvanceRestart(dt) {
			g.restart()
			restarted = true
		}
	}

	return core.StepResult{State: g.State(), Restarted: restarted}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.clock.Score(),
		Health:    g.player.Health(),
		MaxHealth: g.player.MaxHealth(),
		GameOver:  g.clock.IsOver(),
		Paused:    g.clock.IsPaused(),
	}
}

// Summary returns the statistics of the current run.
func (g *Game) Summary() Summary {
	s := g.stats.stats
	s.Distance = g.player.Z()
	s.Duration = g.clock.Elapsed()
	return Summary{
		Score:      g.clock.Score(),
		Difficulty: string(g.difficulty),
		Seed:       g.seed(),
		RunStats:   s,
	}
}

// Difficulty returns the preset this game was created with.
func (g *Game) Difficulty() config.DifficultyPreset { return g.difficulty }

// Config returns the configuration of the current run.
func (g *Game) Config() config.RunnerConfig { return g.cfg }

// Bus returns the event bus of the current run. It is replaced when a
// reloaded config takes effect.
func (g *Game) Bus() *events.Bus { return g.bus }

// Clock returns the run clock.
func (g *Game) Clock() *Clock { return g.clock }

// Player returns the player.
func (g *Game) Player() *Player { return g.player }

// World returns the world generator.
func (g *Game) World() *World { return g.world }

// HUD returns the HUD projection.
func (g *Game) HUD() *HUD { return g.hud }

// Close releases the bus and every subscription.
func (g *Game) Close() {
	g.close()
}

func (g *Game) close() {
	if g.bus == nil {
		return
	}
	g.stats.close()
	g.hud.Close()
	g.world.Close()
	g.player.Close()
	g.clock.Close()
	g.bus.Close()
	g.bus = nil
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
