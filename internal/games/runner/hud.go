package runner

import (
	"fmt"

	"github.com/vovakirdan/lane-runner/internal/events"
)

// HUD projects game events into display strings. It never changes game state.
type HUD struct {
	health   string
	score    string
	speed    string
	gameOver bool

	healthRatio float64
	subs        []events.Subscription
}

// NewHUD subscribes a HUD to bus.
func NewHUD(bus *events.Bus) *HUD {
	h := &HUD{
		health:      "Health: 0/0",
		score:       "Score: 0",
		speed:       "Speed: 0.0",
		healthRatio: 1,
	}
	h.subs = []events.Subscription{
		events.Subscribe(bus, func(e events.PlayerHealthChanged) {
			h.health = fmt.Sprintf("Health: %d/%d", e.Current, e.Max)
			if e.Max > 0 {
				h.healthRatio = float64(e.Current) / float64(e.Max)
			}
		}),
		events.Subscribe(bus, func(e events.ScoreChanged) {
			h.score = fmt.Sprintf("Score: %d", e.Score)
		}),
		events.Subscribe(bus, func(e events.SpeedChanged) {
			h.speed = fmt.Sprintf("Speed: %.1f", e.Speed)
		}),
		events.Subscribe(bus, func(events.PlayerDied) {
			h.gameOver = true
		}),
		events.Subscribe(bus, func(events.GameReset) {
			h.gameOver = false
		}),
	}
	return h
}

// Lines returns the health, score and speed texts in display order.
func (h *HUD) Lines() []string {
	return []string{h.health, h.score, h.speed}
}

// Health returns the health text.
func (h *HUD) Health() string { return h.health }

// Score returns the score text.
func (h *HUD) Score() string { return h.score }

// Speed returns the speed text.
func (h *HUD) Speed() string { return h.speed }

// HealthRatio returns the last reported health as a fraction of the maximum.
func (h *HUD) HealthRatio() float64 { return h.healthRatio }

// GameOverVisible reports whether the game-over panel should be shown.
func (h *HUD) GameOverVisible() bool { return h.gameOver }

// Close unsubscribes the HUD.
func (h *HUD) Close() {
	for _, s := range h.subs {
		s.Unsubscribe()
	}
	h.subs = nil
}
