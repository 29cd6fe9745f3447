package runner

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/events"
)

// Clock tracks elapsed run time, derives speed and score from it, and owns
// the run lifecycle (start, pause, resume, game over, restart).
type Clock struct {
	bus    *events.Bus
	cfg    config.ClockConfig
	logger *log.Logger

	elapsed float64
	speed   float64
	running bool
	paused  bool
	over    bool

	restartIn      float64
	restartPending bool

	sub events.Subscription
}

// NewClock creates a stopped clock. Call Start to begin a run.
func NewClock(bus *events.Bus, cfg config.ClockConfig, logger *log.Logger) *Clock {
	c := &Clock{
		bus:    bus,
		cfg:    cfg,
		logger: orDiscard(logger),
		speed:  cfg.BaseSpeed,
	}
	c.sub = events.Subscribe(bus, c.onPlayerDied)
	return c
}

// Start begins a fresh run. GameReset is published before GameStarted so
// every subscriber reinitializes before the run is observed as started.
func (c *Clock) Start() {
	c.elapsed = 0
	c.speed = c.cfg.BaseSpeed
	c.over = false
	c.restartPending = false
	c.restartIn = 0

	events.Publish(c.bus, events.GameReset{})
	c.running = true
	c.paused = false
	events.Publish(c.bus, events.GameStarted{})
	events.Publish(c.bus, events.SpeedChanged{Speed: c.speed})
	events.Publish(c.bus, events.ScoreChanged{Score: 0})

	c.logger.Debug("run started", "base_speed", c.cfg.BaseSpeed)
}

// Restart clears all run state and starts again.
func (c *Clock) Restart() {
	c.running = false
	c.paused = false
	c.Start()
}

// Tick advances the clock by dt seconds. It does nothing unless the run is
// active and unpaused.
func (c *Clock) Tick(dt float64) {
	if !c.running || c.paused || dt <= 0 {
		return
	}
	c.elapsed += dt
	c.speed = c.speedAt(c.elapsed)
	events.Publish(c.bus, events.SpeedChanged{Speed: c.speed})
	events.Publish(c.bus, events.ScoreChanged{Score: c.Score()})
}

// speedAt returns base + elapsed*rate, capped by MaxSpeed when set.
func (c *Clock) speedAt(elapsed float64) float64 {
	if !c.cfg.Acceleration {
		return c.cfg.BaseSpeed
	}
	s := c.cfg.BaseSpeed + elapsed*c.cfg.SpeedIncreasePerSecond
	if c.cfg.MaxSpeed > 0 && s > c.cfg.MaxSpeed {
		s = c.cfg.MaxSpeed
	}
	return s
}

// Pause stops time if the run is active. It reports whether state changed.
func (c *Clock) Pause() bool {
	if !c.running || c.paused {
		return false
	}
	c.paused = true
	events.Publish(c.bus, events.GamePaused{})
	return true
}

// Resume continues a paused run. It reports whether state changed.
func (c *Clock) Resume() bool {
	if !c.paused {
		return false
	}
	c.paused = false
	events.Publish(c.bus, events.GameResumed{})
	return true
}

func (c *Clock) onPlayerDied(events.PlayerDied) {
	if c.over {
		return
	}
	c.running = false
	c.paused = false
	c.over = true
	c.logger.Info("run over", "score", c.Score(), "elapsed", c.elapsed, "speed", c.speed)

	if c.cfg.AutoRestartDelay > 0 {
		c.restartPending = true
		c.restartIn = c.cfg.AutoRestartDelay
	}
}

// AdvanceRestart counts down a scheduled automatic restart and reports
// true once the delay has elapsed. The caller performs the restart.
func (c *Clock) AdvanceRestart(dt float64) bool {
	if !c.restartPending {
		return false
	}
	c.restartIn -= dt
	if c.restartIn > 0 {
		return false
	}
	c.restartPending = false
	c.restartIn = 0
	return true
}

// RestartIn returns the seconds left before an automatic restart.
func (c *Clock) RestartIn() (float64, bool) {
	return c.restartIn, c.restartPending
}

// Speed returns the current speed in units per second.
func (c *Clock) Speed() float64 { return c.speed }

// Elapsed returns the seconds survived in this run.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Score returns whole seconds survived.
func (c *Clock) Score() int { return int(math.Floor(c.elapsed)) }

// IsRunning reports whether the run is active and unpaused.
func (c *Clock) IsRunning() bool { return c.running && !c.paused }

// IsPaused reports whether the run is paused.
func (c *Clock) IsPaused() bool { return c.paused }

// IsOver reports whether the player has died in this run.
func (c *Clock) IsOver() bool { return c.over }

// Close detaches the clock from the bus.
func (c *Clock) Close() {
	c.sub.Unsubscribe()
}
