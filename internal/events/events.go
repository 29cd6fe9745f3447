package events

// Event is implemented by every notification published on a Bus.
// The unexported marker keeps the set of event types closed to this package.
type Event interface {
	gameEvent()
}

// DestroyReason describes why an obstacle left the world.
type DestroyReason int

const (
	DestroyBroken    DestroyReason = iota // Player ran into it
	DestroyDespawned                      // Reclaimed behind the player
)

func (r DestroyReason) String() string {
	switch r {
	case DestroyBroken:
		return "broken"
	case DestroyDespawned:
		return "despawned"
	default:
		return "unknown"
	}
}

// ObstacleInfo is a value snapshot of an obstacle carried by obstacle events.
type ObstacleInfo struct {
	ID      uint64
	Segment int
	Lane    int
	Type    string
	Damage  int
	Z       float64
}

// PickupInfo is a value snapshot of a heal pickup.
type PickupInfo struct {
	ID      uint64
	Segment int
	Lane    int
	Amount  int
	Z       float64
}

// PlayerMoved is published when a lane swap completes.
type PlayerMoved struct {
	Lane int
}

// PlayerJumped is published when a jump lands.
type PlayerJumped struct{}

// PlayerDamaged is published for every hit that reduced health.
type PlayerDamaged struct {
	Damage    int
	Remaining int
}

// PlayerDied is published once when health first reaches zero.
type PlayerDied struct{}

// PlayerHealthChanged is published whenever health is set, lowered or raised.
type PlayerHealthChanged struct {
	Current int
	Max     int
}

// GameStarted is published when a run begins.
type GameStarted struct{}

// GamePaused is published when a running game is paused.
type GamePaused struct{}

// GameResumed is published when a paused game continues.
type GameResumed struct{}

// GameReset is published before GameStarted so components reinitialize.
type GameReset struct{}

// ObstacleSpawned is published for every obstacle placed on a segment.
type ObstacleSpawned struct {
	Obstacle ObstacleInfo
}

// ObstacleDestroyed is published when an obstacle is broken or reclaimed.
type ObstacleDestroyed struct {
	Obstacle ObstacleInfo
	Reason   DestroyReason
}

// ScoreChanged carries the score for the current tick.
type ScoreChanged struct {
	Score int
}

// SpeedChanged carries the game speed for the current tick.
type SpeedChanged struct {
	Speed float64
}

// SegmentSpawned is published when the frontier grows by one segment.
type SegmentSpawned struct {
	Index int
	Z     float64
}

// SegmentDespawned is published when a segment behind the player is reclaimed.
type SegmentDespawned struct {
	Index int
	Z     float64
}

// PickupCollected is published when the player picks up a heal.
type PickupCollected struct {
	Pickup PickupInfo
	Healed int
}

func (PlayerMoved) gameEvent()         {}
func (PlayerJumped) gameEvent()        {}
func (PlayerDamaged) gameEvent()       {}
func (PlayerDied) gameEvent()          {}
func (PlayerHealthChanged) gameEvent() {}
func (GameStarted) gameEvent()         {}
func (GamePaused) gameEvent()          {}
func (GameResumed) gameEvent()         {}
func (GameReset) gameEvent()           {}
func (ObstacleSpawned) gameEvent()     {}
func (ObstacleDestroyed) gameEvent()   {}
func (ScoreChanged) gameEvent()        {}
func (SpeedChanged) gameEvent()        {}
func (SegmentSpawned) gameEvent()      {}
func (SegmentDespawned) gameEvent()    {}
func (PickupCollected) gameEvent()     {}
