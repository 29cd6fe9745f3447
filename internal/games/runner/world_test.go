package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/events"
)

func newTestWorld(cfg config.WorldConfig, seed int64) (*events.Bus, *World) {
	bus := events.New()
	return bus, NewWorld(bus, cfg, 3, seed, nil)
}

func checkContiguous(t *testing.T, w *World) {
	t.Helper()
	segs := w.Segments()
	for i := 1; i < len(segs); i++ {
		if segs[i].Index != segs[i-1].Index+1 {
			t.Fatalf("segment indices not consecutive: %d then %d", segs[i-1].Index, segs[i].Index)
		}
		if math.Abs(segs[i].Z-segs[i-1].Z-w.SegmentLength()) > 1e-9 {
			t.Fatalf("gap between segments %d and %d", segs[i-1].Index, segs[i].Index)
		}
	}
	if len(segs) > 0 {
		last := segs[len(segs)-1]
		if math.Abs(last.End(w.SegmentLength())-w.FrontierZ()) > 1e-9 {
			t.Fatalf("frontier %v does not match last segment end %v", w.FrontierZ(), last.End(w.SegmentLength()))
		}
	}
}

func TestWorldInitialGeneration(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	_, w := newTestWorld(cfg, 1)

	if w.FrontierZ() < cfg.InitialLength {
		t.Errorf("frontier = %v, want at least %v", w.FrontierZ(), cfg.InitialLength)
	}
	checkContiguous(t, w)

	segs := w.Segments()
	if segs[0].Z != 0 {
		t.Errorf("first segment at z=%v, want 0", segs[0].Z)
	}
	for i := 0; i < cfg.SafeSegments; i++ {
		if !segs[i].Safe || len(segs[i].Obstacles) != 0 || len(segs[i].Pickups) != 0 {
			t.Errorf("segment %d should be an empty safe segment", i)
		}
	}
	if segs[cfg.SafeSegments].Safe {
		t.Error("segments after the safe start should not be safe")
	}
}

func TestWorldObstaclePlacement(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	_, w := newTestWorld(cfg, 7)

	damage := map[string]int{}
	for _, ot := range cfg.ObstacleTypes {
		damage[ot.Name] = ot.Damage
	}

	total := 0
	for _, seg := range w.Segments() {
		if len(seg.Obstacles) > 2 {
			t.Errorf("segment %d has %d obstacles, keep_lane_open allows 2", seg.Index, len(seg.Obstacles))
		}
		seen := map[int]bool{}
		for _, o := range seg.Obstacles {
			if o.Lane < 0 || o.Lane >= 3 {
				t.Errorf("obstacle lane %d out of range", o.Lane)
			}
			if seen[o.Lane] {
				t.Errorf("segment %d has two obstacles in lane %d", seg.Index, o.Lane)
			}
			seen[o.Lane] = true
			if d, ok := damage[o.Type.Name]; !ok || d != o.Type.Damage {
				t.Errorf("unexpected obstacle type %+v", o.Type)
			}
			if o.Z < seg.Z || o.Z+cfg.ObstacleDepth > seg.End(cfg.SegmentLength) {
				t.Errorf("obstacle z %v outside segment [%v, %v)", o.Z, seg.Z, seg.End(cfg.SegmentLength))
			}
		}
		for _, p := range seg.Pickups {
			if seen[p.Lane] {
				t.Errorf("pickup shares lane %d with an obstacle", p.Lane)
			}
		}
		total += len(seg.Obstacles)
	}
	if total == 0 {
		t.Error("expected some obstacles in the initial world")
	}
	if total != w.ObstacleCount() {
		t.Errorf("ObstacleCount = %d, counted %d", w.ObstacleCount(), total)
	}
}

func TestWorldCountRange(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	cfg.LaneProbability = 1
	cfg.KeepLaneOpen = false
	_, w := newTestWorld(cfg, 3)

	for _, seg := range w.Segments() {
		if seg.Safe {
			continue
		}
		if n := len(seg.Obstacles); n < 1 || n > 3 {
			t.Errorf("segment %d has %d obstacles, want 1..3", seg.Index, n)
		}
	}
}

func TestWorldZeroProbability(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	cfg.LaneProbability = 0
	_, w := newTestWorld(cfg, 3)

	if w.ObstacleCount() != 0 {
		t.Errorf("ObstacleCount = %d, want 0", w.ObstacleCount())
	}
}

func TestWorldEmptyObstacleTypes(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	cfg.ObstacleTypes = nil
	_, w := newTestWorld(cfg, 3)

	w.Update(500)
	if w.ObstacleCount() != 0 {
		t.Errorf("ObstacleCount = %d, want 0", w.ObstacleCount())
	}
}

func TestWorldDeterminism(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	_, a := newTestWorld(cfg, 99)
	_, b := newTestWorld(cfg, 99)

	for z := 0.0; z < 400; z += 5 {
		a.Update(z)
		b.Update(z)
	}

	sa, sb := a.Segments(), b.Segments()
	if len(sa) != len(sb) {
		t.Fatalf("segment counts differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i].Index != sb[i].Index || len(sa[i].Obstacles) != len(sb[i].Obstacles) || len(sa[i].Pickups) != len(sb[i].Pickups) {
			t.Fatalf("segment %d differs", i)
		}
		for j := range sa[i].Obstacles {
			if sa[i].Obstacles[j] != sb[i].Obstacles[j] {
				t.Fatalf("obstacle %d of segment %d differs: %+v vs %+v", j, i, sa[i].Obstacles[j], sb[i].Obstacles[j])
			}
		}
	}
}

func TestWorldUpdateKeepsFrontierAhead(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	bus, w := newTestWorld(cfg, 5)
	rec := events.Record(bus)

	for z := 0.0; z < 1500; z += 3.7 {
		w.Update(z)
		if w.FrontierZ() < z+cfg.Lookahead-cfg.SegmentLength {
			t.Fatalf("frontier %v too close to player %v", w.FrontierZ(), z)
		}
		first := w.Segments()[0]
		if first.End(cfg.SegmentLength) < z-cfg.Trailing {
			t.Fatalf("segment %d behind the trailing edge was kept", first.Index)
		}
	}
	checkContiguous(t, w)

	if events.Count[events.SegmentDespawned](rec) == 0 {
		t.Error("expected segments to be reclaimed")
	}
	for _, ev := range rec.Events() {
		if d, ok := ev.(events.ObstacleDestroyed); ok && d.Reason != events.DestroyDespawned {
			t.Errorf("unexpected destroy reason %v", d.Reason)
		}
	}
}

func TestWorldSpawnDestroyBalance(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	bus := events.New()
	rec := events.Record(bus)
	w := NewWorld(bus, cfg, 3, 11, nil)

	for z := 0.0; z < 2000; z += 2 {
		w.Update(z)
	}

	spawned := events.Count[events.ObstacleSpawned](rec)
	destroyed := events.Count[events.ObstacleDestroyed](rec)
	if spawned-destroyed != w.ObstacleCount() {
		t.Errorf("spawned %d - destroyed %d != live %d", spawned, destroyed, w.ObstacleCount())
	}
}

func TestWorldResetOnGameReset(t *testing.T) {
	cfg := config.DefaultRunnerConfig().World
	bus, w := newTestWorld(cfg, 5)
	first := append([]Segment(nil), w.Segments()...)

	w.Update(800)
	events.Publish(bus, events.GameReset{})

	segs := w.Segments()
	if segs[0].Z != 0 || len(segs) != len(first) {
		t.Fatalf("world not regenerated from z=0")
	}
	for i := range segs {
		if len(segs[i].Obstacles) != len(first[i].Obstacles) {
			t.Fatalf("same seed should regenerate the same world (segment %d)", i)
		}
	}
}

// placeObstacle replaces the world with one segment holding a single item.
func placeObstacle(w *World, o Obstacle, pickups ...Pickup) {
	w.segments = []Segment{{Index: 0, Z: 0, Obstacles: []Obstacle{o}, Pickups: pickups}}
}

func TestWorldCollideBreaksObstacle(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	bus := events.New()
	rec := events.Record(bus)
	p := NewPlayer(bus, cfg.Player, 10, nil)
	w := NewWorld(bus, cfg.World, 3, 1, nil)

	placeObstacle(w, Obstacle{ID: 1, Lane: 1, Type: cfg.World.ObstacleTypes[0], Z: 5})

	p.Advance(0.5, 10)
	if hits := w.Collide(p); hits != 1 {
		t.Fatalf("hits = %d, want 1", hits)
	}
	if p.Health() != 100-cfg.World.ObstacleTypes[0].Damage {
		t.Errorf("health = %d", p.Health())
	}
	if w.ObstacleCount() != 0 {
		t.Error("broken obstacle should be removed")
	}
	d, ok := events.Last[events.ObstacleDestroyed](rec)
	if !ok || d.Reason != events.DestroyBroken || d.Obstacle.ID != 1 {
		t.Errorf("ObstacleDestroyed = %+v, %v", d, ok)
	}

	p.Advance(testDT, 10)
	if hits := w.Collide(p); hits != 0 {
		t.Error("obstacle hit twice")
	}
}

func TestWorldCollideOtherLane(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	bus := events.New()
	p := NewPlayer(bus, cfg.Player, 10, nil)
	w := NewWorld(bus, cfg.World, 3, 1, nil)

	placeObstacle(w, Obstacle{ID: 1, Lane: 0, Type: cfg.World.ObstacleTypes[0], Z: 5})

	p.Advance(0.5, 10)
	if hits := w.Collide(p); hits != 0 || p.Health() != 100 {
		t.Errorf("obstacle in another lane hit the player")
	}
}

func TestWorldCollideSweptAtHighSpeed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	bus := events.New()
	p := NewPlayer(bus, cfg.Player, 10, nil)
	w := NewWorld(bus, cfg.World, 3, 1, nil)

	placeObstacle(w, Obstacle{ID: 1, Lane: 1, Type: cfg.World.ObstacleTypes[0], Z: 5})

	// One step from z=0 to z=20 jumps over the obstacle's span entirely.
	p.Advance(0.2, 100)
	if hits := w.Collide(p); hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}

func TestWorldCollideAirborne(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	bus := events.New()
	p := NewPlayer(bus, cfg.Player, 10, nil)
	w := NewWorld(bus, cfg.World, 3, 1, nil)

	placeObstacle(w, Obstacle{ID: 1, Lane: 1, Type: cfg.World.ObstacleTypes[0], Z: 4})
	p.Jump()
	for i := 0; i < 120 && p.Motion() == MotionJump; i++ {
		p.Advance(testDT, 10)
		if hits := w.Collide(p); hits != 0 {
			t.Fatalf("hit at z=%v while clearing the obstacle", p.Z())
		}
	}
	if p.Health() != 100 {
		t.Errorf("health = %d, want 100", p.Health())
	}
	if w.ObstacleCount() != 1 {
		t.Error("obstacle should remain after being jumped")
	}
}

func TestWorldCollideTakeoffInsideObstacle(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	bus := events.New()
	p := NewPlayer(bus, cfg.Player, 10, nil)
	w := NewWorld(bus, cfg.World, 3, 1, nil)

	placeObstacle(w, Obstacle{ID: 1, Lane: 1, Type: cfg.World.ObstacleTypes[0], Z: 0.2})
	p.Jump()
	p.Advance(0.45, 10)
	if !p.Airborne() {
		t.Fatal("player should be at the top of the arc")
	}
	if hits := w.Collide(p); hits != 1 {
		t.Errorf("hits = %d, want 1 for an obstacle entered before leaving the ground", hits)
	}
}

func TestWorldCollideLandingPastObstacle(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	bus := events.New()
	p := NewPlayer(bus, cfg.Player, 10, nil)
	w := NewWorld(bus, cfg.World, 3, 1, nil)

	placeObstacle(w,
		Obstacle{ID: 1, Lane: 1, Type: cfg.World.ObstacleTypes[0], Z: 5},
		Pickup{ID: 2, Lane: 1, Amount: 15, Z: 5.5},
	)
	p.TakeDamage(50)
	p.Jump()
	p.Advance(0.45, 10)
	w.Collide(p)

	p.Advance(0.45, 10)
	if p.Motion() != MotionMove {
		t.Fatal("jump should have landed")
	}
	if hits := w.Collide(p); hits != 0 {
		t.Errorf("hits = %d, want 0 for an obstacle passed above Clearance", hits)
	}
	if p.Health() != 50 {
		t.Errorf("health = %d, pickup under the arc should not be collected", p.Health())
	}
}

func TestWorldCollideAfterReclaim(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.World.Trailing = 0
	bus := events.New()
	rec := events.Record(bus)
	p := NewPlayer(bus, cfg.Player, 10, nil)
	w := NewWorld(bus, cfg.World, 3, 1, nil)

	placeObstacle(w, Obstacle{ID: 1, Lane: 1, Type: cfg.World.ObstacleTypes[0], Z: 2})
	p.Advance(1, 25)
	w.Extend(p.Z())
	hits := w.Collide(p)
	w.Reclaim(p.Z())

	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	for _, ev := range rec.Events() {
		if d, ok := ev.(events.ObstacleDestroyed); ok && d.Obstacle.ID == 1 && d.Reason != events.DestroyBroken {
			t.Errorf("obstacle destroyed as %v, want broken", d.Reason)
		}
	}
	if len(w.Segments()) > 0 && w.Segments()[0].Index == 0 {
		t.Error("crossed segment should be reclaimed")
	}
}

func TestWorldCollidePickup(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	bus := events.New()
	rec := events.Record(bus)
	p := NewPlayer(bus, cfg.Player, 10, nil)
	w := NewWorld(bus, cfg.World, 3, 1, nil)

	placeObstacle(w,
		Obstacle{ID: 1, Lane: 0, Type: cfg.World.ObstacleTypes[0], Z: 5},
		Pickup{ID: 2, Lane: 1, Amount: 15, Z: 5},
	)
	p.TakeDamage(50)

	p.Advance(0.5, 10)
	w.Collide(p)

	if p.Health() != 65 {
		t.Errorf("health = %d, want 65", p.Health())
	}
	ev, ok := events.Last[events.PickupCollected](rec)
	if !ok || ev.Healed != 15 || ev.Pickup.ID != 2 {
		t.Errorf("PickupCollected = %+v, %v", ev, ok)
	}
	if len(w.Segments()[0].Pickups) != 0 {
		t.Error("collected pickup should be removed")
	}
}
