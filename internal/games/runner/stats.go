package runner

import (
	"github.com/vovakirdan/lane-runner/internal/events"
)

// RunStats counts what happened during one run.
type RunStats struct {
	Distance  float64
	Duration  float64
	Hits      int
	Passed    int
	Jumps     int
	LaneSwaps int
	Pickups   int
	Healed    int
	Damage    int
}

// Summary describes a finished or in-progress run.
type Summary struct {
	Score      int
	Difficulty string
	Seed       int64
	RunStats
}

// statsTracker fills RunStats from bus events and clears them on GameReset.
type statsTracker struct {
	stats RunStats
	subs  []events.Subscription
}

func newStatsTracker(bus *events.Bus) *statsTracker {
	t := &statsTracker{}
	t.subs = []events.Subscription{
		events.Subscribe(bus, func(events.GameReset) { t.stats = RunStats{} }),
		events.Subscribe(bus, func(e events.ObstacleDestroyed) {
			switch e.Reason {
			case events.DestroyBroken:
				t.stats.Hits++
			case events.DestroyDespawned:
				t.stats.Passed++
			}
		}),
		events.Subscribe(bus, func(events.PlayerJumped) { t.stats.Jumps++ }),
		events.Subscribe(bus, func(events.PlayerMoved) { t.stats.LaneSwaps++ }),
		events.Subscribe(bus, func(e events.PickupCollected) {
			t.stats.Pickups++
			t.stats.Healed += e.Healed
		}),
		events.Subscribe(bus, func(e events.PlayerDamaged) { t.stats.Damage += e.Damage }),
	}
	return t
}

func (t *statsTracker) close() {
	for _, s := range t.subs {
		s.Unsubscribe()
	}
	t.subs = nil
}
