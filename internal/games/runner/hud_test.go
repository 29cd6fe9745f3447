package runner

import (
	"testing"

	"github.com/vovakirdan/lane-runner/internal/events"
)

func TestHUDProjection(t *testing.T) {
	bus := events.New()
	h := NewHUD(bus)

	events.Publish(bus, events.PlayerHealthChanged{Current: 75, Max: 100})
	events.Publish(bus, events.ScoreChanged{Score: 12})
	events.Publish(bus, events.SpeedChanged{Speed: 16.04})

	want := []string{"Health: 75/100", "Score: 12", "Speed: 16.0"}
	got := h.Lines()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if h.HealthRatio() != 0.75 {
		t.Errorf("health ratio = %v, want 0.75", h.HealthRatio())
	}
}

func TestHUDGameOverPanel(t *testing.T) {
	bus := events.New()
	h := NewHUD(bus)

	if h.GameOverVisible() {
		t.Fatal("panel visible before death")
	}
	events.Publish(bus, events.PlayerDied{})
	if !h.GameOverVisible() {
		t.Error("panel hidden after PlayerDied")
	}
	events.Publish(bus, events.GameReset{})
	if h.GameOverVisible() {
		t.Error("panel visible after GameReset")
	}
}

func TestHUDClose(t *testing.T) {
	bus := events.New()
	h := NewHUD(bus)
	before := bus.Handlers()

	h.Close()
	if bus.Handlers() != before-5 {
		t.Errorf("handlers = %d, want %d", bus.Handlers(), before-5)
	}

	events.Publish(bus, events.ScoreChanged{Score: 99})
	if h.Score() != "Score: 0" {
		t.Errorf("closed HUD updated to %q", h.Score())
	}
}
