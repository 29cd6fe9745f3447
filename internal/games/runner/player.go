package runner

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/events"
	"github.com/vovakirdan/lane-runner/internal/tween"
)

// Motion is the player's movement state. New input is accepted only in MotionMove.
type Motion int

const (
	MotionMove Motion = iota
	MotionSwapLane
	MotionJump
)

func (m Motion) String() string {
	switch m {
	case MotionMove:
		return "move"
	case MotionSwapLane:
		return "swap"
	case MotionJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Player holds lane, health and motion state for the runner.
type Player struct {
	bus       *events.Bus
	cfg       config.PlayerConfig
	baseSpeed float64
	logger    *log.Logger

	lane   int
	target int
	health int
	alive  bool
	motion Motion
	speed  float64

	z     float64 // Distance along the track
	prevZ float64 // z at the start of the last Advance
	x     float64 // Lateral offset
	y     float64 // Height above ground

	swap       *tween.Tween
	jump       *tween.Tween
	jumpStartZ float64
	clear      core.Span // Z range of the last jump spent above Clearance

	subs []events.Subscription
}

// NewPlayer creates a player that reinitializes itself on GameReset and
// follows SpeedChanged for jump timing.
func NewPlayer(bus *events.Bus, cfg config.PlayerConfig, baseSpeed float64, logger *log.Logger) *Player {
	p := &Player{
		bus:       bus,
		cfg:       cfg,
		baseSpeed: baseSpeed,
		logger:    orDiscard(logger),
	}
	p.subs = append(p.subs,
		events.Subscribe(bus, func(events.GameReset) { p.Reset() }),
		events.Subscribe(bus, func(e events.SpeedChanged) { p.speed = e.Speed }),
	)
	p.Reset()
	return p
}

// Reset returns the player to the middle lane at full start health.
func (p *Player) Reset() {
	p.swap.Kill()
	p.jump.Kill()
	p.swap = nil
	p.jump = nil

	p.lane = len(p.cfg.Lanes) / 2
	p.target = p.lane
	p.x = p.laneOffset(p.lane)
	p.y = 0
	p.z = 0
	p.prevZ = 0
	p.clear = noClearance
	p.motion = MotionMove
	p.health = p.cfg.StartHealth
	p.alive = true
	p.speed = p.baseSpeed

	events.Publish(p.bus, events.PlayerHealthChanged{Current: p.health, Max: p.cfg.MaxHealth})
}

func (p *Player) laneOffset(lane int) float64 {
	if lane < 0 || lane >= len(p.cfg.Lanes) {
		return 0
	}
	return p.cfg.Lanes[lane]
}

// MoveLeft starts a swap to the lane on the left.
func (p *Player) MoveLeft() bool {
	return p.swapTo(p.lane - 1)
}

// MoveRight starts a swap to the lane on the right.
func (p *Player) MoveRight() bool {
	return p.swapTo(p.lane + 1)
}

func (p *Player) swapTo(target int) bool {
	if !p.alive || p.motion != MotionMove {
		return false
	}
	if target < 0 || target >= len(p.cfg.Lanes) {
		return false
	}

	p.target = target
	p.motion = MotionSwapLane
	p.swap = tween.New(p.x, p.laneOffset(target), p.cfg.LaneSwapDuration, tween.InOutQuad).
		OnComplete(func() {
			p.lane = p.target
			p.x = p.laneOffset(p.lane)
			p.motion = MotionMove
			events.Publish(p.bus, events.PlayerMoved{Lane: p.lane})
		})
	return true
}

// JumpDuration returns how long a jump takes at the current speed.
// Faster runs shorten the jump so the forward distance stays JumpLength.
func (p *Player) JumpDuration() float64 {
	if p.speed <= 0 {
		return p.cfg.JumpDuration
	}
	return p.cfg.JumpDuration * p.baseSpeed / p.speed
}

// Jump starts a jump arc.
func (p *Player) Jump() bool {
	if !p.alive || p.motion != MotionMove {
		return false
	}

	p.motion = MotionJump
	p.jumpStartZ = p.z
	p.clear = p.clearanceSpan(p.z)
	p.jump = tween.New(0, 1, p.JumpDuration(), tween.InOutSine).
		OnComplete(func() {
			p.y = 0
			p.z = p.jumpStartZ + p.cfg.JumpLength
			p.motion = MotionMove
			events.Publish(p.bus, events.PlayerJumped{})
		})
	return true
}

// Advance moves the player forward by dt seconds at the given speed and
// steps any active swap or jump.
func (p *Player) Advance(dt, speed float64) {
	p.prevZ = p.z
	if !p.alive || dt <= 0 {
		return
	}
	p.speed = speed

	if p.swap.Active() {
		if p.swap.Step(dt) {
			p.x = p.swap.Value()
		}
	}

	if p.jump.Active() {
		if p.jump.Step(dt) {
			t := p.jump.Eased()
			p.y = tween.Arc(t, p.cfg.JumpHeight)
			p.z = p.jumpStartZ + p.cfg.JumpLength*t
		}
		return
	}
	p.z += speed * dt
}

// TakeDamage lowers health, never below zero. PlayerDied is published the
// first time health reaches zero.
func (p *Player) TakeDamage(n int) {
	if !p.alive || n <= 0 {
		return
	}
	p.health = max(0, p.health-n)
	events.Publish(p.bus, events.PlayerDamaged{Damage: n, Remaining: p.health})
	events.Publish(p.bus, events.PlayerHealthChanged{Current: p.health, Max: p.cfg.MaxHealth})

	if p.health == 0 {
		p.alive = false
		p.swap.Kill()
		p.jump.Kill()
		p.y = 0
		p.logger.Debug("player died", "z", p.z, "lane", p.lane)
		events.Publish(p.bus, events.PlayerDied{})
	}
}

// Heal raises health up to the maximum and returns the amount restored.
func (p *Player) Heal(n int) int {
	if !p.alive || n <= 0 {
		return 0
	}
	before := p.health
	p.health = min(p.cfg.MaxHealth, p.health+n)
	events.Publish(p.bus, events.PlayerHealthChanged{Current: p.health, Max: p.cfg.MaxHealth})
	return p.health - before
}

// Airborne reports whether the player is high enough for obstacles to pass beneath.
func (p *Player) Airborne() bool {
	return p.motion == MotionJump && p.y >= p.cfg.Clearance
}

// noClearance is an empty span that contains no distance.
var noClearance = core.Span{Start: math.Inf(1), End: math.Inf(-1)}

// clearanceSpan returns the Z range of a jump from startZ over which the
// arc stays at or above Clearance. z is linear in the eased jump time, so
// solving Arc(t) >= Clearance for t gives the range directly.
func (p *Player) clearanceSpan(startZ float64) core.Span {
	h, c := p.cfg.JumpHeight, p.cfg.Clearance
	if h <= 0 || c > h {
		return noClearance
	}
	if c <= 0 {
		return core.Span{Start: startZ, End: startZ + p.cfg.JumpLength}
	}
	r := math.Sqrt(1 - c/h)
	return core.Span{
		Start: startZ + p.cfg.JumpLength*(1-r)/2,
		End:   startZ + p.cfg.JumpLength*(1+r)/2,
	}
}

// GroundedWithin reports whether any part of the distance range [from, to]
// was covered below Clearance.
func (p *Player) GroundedWithin(from, to float64) bool {
	return from < p.clear.Start || to > p.clear.End
}

// HitLane returns the lane whose offset is nearest the current lateral position.
func (p *Player) HitLane() int {
	best := p.lane
	bestDist := math.Inf(1)
	for i, off := range p.cfg.Lanes {
		if d := math.Abs(off - p.x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Lane returns the current lane index. During a swap this is the origin lane.
func (p *Player) Lane() int { return p.lane }

// Health returns current health.
func (p *Player) Health() int { return p.health }

// MaxHealth returns the health ceiling.
func (p *Player) MaxHealth() int { return p.cfg.MaxHealth }

// Alive reports whether the player still has health.
func (p *Player) Alive() bool { return p.alive }

// Motion returns the current movement state.
func (p *Player) Motion() Motion { return p.motion }

// Z returns the distance travelled.
func (p *Player) Z() float64 { return p.z }

// PrevZ returns the distance at the start of the last Advance.
func (p *Player) PrevZ() float64 { return p.prevZ }

// X returns the lateral offset.
func (p *Player) X() float64 { return p.x }

// Y returns the height above ground.
func (p *Player) Y() float64 { return p.y }

// Close detaches the player from the bus.
func (p *Player) Close() {
	for _, s := range p.subs {
		s.Unsubscribe()
	}
	p.subs = nil
}
