package runner

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/events"
)

// Obstacle blocks one lane for ObstacleDepth units of track.
type Obstacle struct {
	ID   uint64
	Lane int
	Type config.ObstacleType
	Z    float64
}

// Pickup restores health when the player runs through it.
type Pickup struct {
	ID     uint64
	Lane   int
	Amount int
	Z      float64
}

// Segment is one fixed-length piece of track.
type Segment struct {
	Index     int
	Z         float64
	Obstacles []Obstacle
	Pickups   []Pickup
	Safe      bool // Part of the obstacle-free start
}

// End returns the Z of the segment's far edge.
func (s Segment) End(length float64) float64 {
	return s.Z + length
}

// World generates segments ahead of the player and reclaims them behind.
type World struct {
	bus    *events.Bus
	cfg    config.WorldConfig
	lanes  int
	seed   int64
	rng    *rand.Rand
	logger *log.Logger

	segments    []Segment
	nextIndex   int
	frontierZ   float64
	nextID      uint64
	warnedEmpty bool

	sub events.Subscription
}

// NewWorld creates a world that regenerates itself on GameReset.
func NewWorld(bus *events.Bus, cfg config.WorldConfig, lanes int, seed int64, logger *log.Logger) *World {
	w := &World{
		bus:    bus,
		cfg:    cfg,
		lanes:  lanes,
		seed:   seed,
		logger: orDiscard(logger),
	}
	w.sub = events.Subscribe(bus, func(events.GameReset) { w.Reset() })
	w.Reset()
	return w
}

// SetSeed changes the seed used by the next Reset.
func (w *World) SetSeed(seed int64) {
	w.seed = seed
}

// Reset discards every segment and regenerates the initial track from z=0.
// Reclaimed obstacles are not reported; the whole world is replaced.
func (w *World) Reset() {
	w.rng = rand.New(rand.NewSource(w.seed))
	w.segments = w.segments[:0]
	w.nextIndex = 0
	w.frontierZ = 0
	w.nextID = 0

	for w.frontierZ < w.cfg.InitialLength {
		w.spawnSegment()
	}
	w.logger.Debug("world generated", "segments", len(w.segments), "frontier", w.frontierZ, "seed", w.seed)
}

// Update keeps the track generated up to playerZ+Lookahead and reclaims
// segments that lie entirely behind playerZ-Trailing.
func (w *World) Update(playerZ float64) {
	w.Extend(playerZ)
	w.Reclaim(playerZ)
}

// Extend spawns segments until the frontier is past playerZ+Lookahead.
func (w *World) Extend(playerZ float64) {
	for playerZ+w.cfg.Lookahead > w.frontierZ {
		w.spawnSegment()
	}
}

// Reclaim despawns segments that end behind playerZ-Trailing. Obstacles
// still on them are reported as passed, so call it after Collide.
func (w *World) Reclaim(playerZ float64) {
	cutoff := playerZ - w.cfg.Trailing
	n := 0
	for n < len(w.segments) && w.segments[n].End(w.cfg.SegmentLength) < cutoff {
		w.despawn(w.segments[n])
		n++
	}
	if n > 0 {
		w.segments = append(w.segments[:0], w.segments[n:]...)
	}
}

func (w *World) despawn(seg Segment) {
	for _, o := range seg.Obstacles {
		events.Publish(w.bus, events.ObstacleDestroyed{
			Obstacle: w.obstacleInfo(seg.Index, o),
			Reason:   events.DestroyDespawned,
		})
	}
	events.Publish(w.bus, events.SegmentDespawned{Index: seg.Index, Z: seg.Z})
}

// spawnSegment appends one segment at the frontier.
func (w *World) spawnSegment() {
	seg := Segment{
		Index: w.nextIndex,
		Z:     w.frontierZ,
		Safe:  w.nextIndex < w.cfg.SafeSegments,
	}
	w.nextIndex++
	w.frontierZ += w.cfg.SegmentLength

	if !seg.Safe {
		w.populate(&seg)
	}
	w.segments = append(w.segments, seg)

	events.Publish(w.bus, events.SegmentSpawned{Index: seg.Index, Z: seg.Z})
	for _, o := range seg.Obstacles {
		events.Publish(w.bus, events.ObstacleSpawned{Obstacle: w.obstacleInfo(seg.Index, o)})
	}
}

// populate places 1-3 candidate obstacles on shuffled lanes, each kept with
// LaneProbability, then maybe a pickup on a free lane.
func (w *World) populate(seg *Segment) {
	if len(w.cfg.ObstacleTypes) == 0 {
		if !w.warnedEmpty {
			w.logger.Warn("no obstacle types configured, segments spawn empty")
			w.warnedEmpty = true
		}
	} else if w.lanes > 0 {
		w.placeObstacles(seg)
	}
	w.placePickup(seg)
}

func (w *World) placeObstacles(seg *Segment) {
	count := 1 + w.rng.Intn(3)
	if count > w.lanes {
		count = w.lanes
	}
	order := w.rng.Perm(w.lanes)
	z := w.obstacleZ(seg.Z)

	for i := 0; i < count; i++ {
		roll := w.rng.Float64()
		typ := w.cfg.ObstacleTypes[w.rng.Intn(len(w.cfg.ObstacleTypes))]
		if roll >= w.cfg.LaneProbability {
			continue
		}
		if w.cfg.KeepLaneOpen && len(seg.Obstacles) >= w.lanes-1 {
			break
		}
		w.nextID++
		seg.Obstacles = append(seg.Obstacles, Obstacle{
			ID:   w.nextID,
			Lane: order[i],
			Type: typ,
			Z:    z,
		})
	}
}

func (w *World) placePickup(seg *Segment) {
	pc := w.cfg.Pickup
	if pc.Chance <= 0 || pc.Amount <= 0 {
		return
	}
	if w.rng.Float64() >= pc.Chance {
		return
	}

	free := make([]int, 0, w.lanes)
	for lane := 0; lane < w.lanes; lane++ {
		if !seg.blocked(lane) {
			free = append(free, lane)
		}
	}
	if len(free) == 0 {
		return
	}

	w.nextID++
	seg.Pickups = append(seg.Pickups, Pickup{
		ID:     w.nextID,
		Lane:   free[w.rng.Intn(len(free))],
		Amount: pc.Amount,
		Z:      w.obstacleZ(seg.Z),
	})
}

// obstacleZ centres an obstacle of ObstacleDepth within its segment.
func (w *World) obstacleZ(segZ float64) float64 {
	return segZ + (w.cfg.SegmentLength-w.cfg.ObstacleDepth)/2
}

func (s *Segment) blocked(lane int) bool {
	for _, o := range s.Obstacles {
		if o.Lane == lane {
			return true
		}
	}
	return false
}

// span returns the Z extent of an item placed at z.
func (w *World) span(z float64) core.Span {
	return core.SpanAt(z, w.cfg.ObstacleDepth)
}

// crossed reports whether the player's movement from prevZ to z entered the span.
func crossed(s core.Span, prevZ, z float64) bool {
	return z >= s.Start && prevZ < s.End
}

// touched reports whether the player crossed the span while on the ground.
func touched(p *Player, s core.Span, prevZ, z float64) bool {
	return crossed(s, prevZ, z) && p.GroundedWithin(max(prevZ, s.Start), min(z, s.End))
}

// Collide resolves contact between the player and the items in their hit
// lane. Obstacles deal damage and break unless the player was above
// Clearance for the whole overlap. Pickups are collected only on the
// ground. It returns the number of hits.
func (w *World) Collide(p *Player) int {
	if !p.Alive() {
		return 0
	}
	lane := p.HitLane()
	prevZ, z := p.PrevZ(), p.Z()
	hits := 0

	for si := range w.segments {
		seg := &w.segments[si]
		if seg.Z > z {
			break
		}
		if seg.End(w.cfg.SegmentLength) < prevZ {
			continue
		}

		kept := seg.Obstacles[:0]
		for _, o := range seg.Obstacles {
			if !p.Alive() || o.Lane != lane || !touched(p, w.span(o.Z), prevZ, z) {
				kept = append(kept, o)
				continue
			}
			hits++
			p.TakeDamage(o.Type.Damage)
			events.Publish(w.bus, events.ObstacleDestroyed{
				Obstacle: w.obstacleInfo(seg.Index, o),
				Reason:   events.DestroyBroken,
			})
		}
		seg.Obstacles = kept

		if p.Alive() {
			kept := seg.Pickups[:0]
			for _, pk := range seg.Pickups {
				if pk.Lane != lane || !touched(p, w.span(pk.Z), prevZ, z) {
					kept = append(kept, pk)
					continue
				}
				healed := p.Heal(pk.Amount)
				events.Publish(w.bus, events.PickupCollected{
					Pickup: events.PickupInfo{ID: pk.ID, Segment: seg.Index, Lane: pk.Lane, Amount: pk.Amount, Z: pk.Z},
					Healed: healed,
				})
			}
			seg.Pickups = kept
		}
	}
	return hits
}

func (w *World) obstacleInfo(segment int, o Obstacle) events.ObstacleInfo {
	return events.ObstacleInfo{
		ID:      o.ID,
		Segment: segment,
		Lane:    o.Lane,
		Type:    o.Type.Name,
		Damage:  o.Type.Damage,
		Z:       o.Z,
	}
}

// Segments returns the live segments ordered by Z. The slice must not be modified.
func (w *World) Segments() []Segment { return w.segments }

// FrontierZ returns the Z at which the next segment will be placed.
func (w *World) FrontierZ() float64 { return w.frontierZ }

// SegmentLength returns the configured segment length.
func (w *World) SegmentLength() float64 { return w.cfg.SegmentLength }

// ObstacleDepth returns the Z extent of obstacles and pickups.
func (w *World) ObstacleDepth() float64 { return w.cfg.ObstacleDepth }

// ObstacleCount returns the number of live obstacles.
func (w *World) ObstacleCount() int {
	n := 0
	for _, s := range w.segments {
		n += len(s.Obstacles)
	}
	return n
}

// Close detaches the world from the bus.
func (w *World) Close() {
	w.sub.Unsubscribe()
}
