// Package config provides YAML-based runner configuration loading,
// validation, difficulty presets and hot reload.
package config

// RunnerConfig contains all tuning for the lane runner.
// Values are treated as immutable once a run has started.
type RunnerConfig struct {
	Player PlayerConfig `yaml:"player"`
	Clock  ClockConfig  `yaml:"clock"`
	World  WorldConfig  `yaml:"world"`
}

// PlayerConfig defines movement and health parameters.
type PlayerConfig struct {
	Lanes            []float64 `yaml:"lanes"`              // Lateral offset of each lane
	LaneSwapDuration float64   `yaml:"lane_swap_duration"` // Seconds per lane swap
	JumpHeight       float64   `yaml:"jump_height"`        // Peak height of the jump arc
	JumpLength       float64   `yaml:"jump_length"`        // Forward distance covered by a jump
	JumpDuration     float64   `yaml:"jump_duration"`      // Seconds per jump at base speed
	Clearance        float64   `yaml:"clearance"`          // Height above which obstacles pass beneath
	MaxHealth        int       `yaml:"max_health"`
	StartHealth      int       `yaml:"start_health"`
}

// ClockConfig defines speed progression and run lifecycle.
type ClockConfig struct {
	BaseSpeed              float64 `yaml:"base_speed"`                // Units per second at start
	SpeedIncreasePerSecond float64 `yaml:"speed_increase_per_second"` // Added per second survived
	Acceleration           bool    `yaml:"acceleration"`              // Whether speed grows at all
	MaxSpeed               float64 `yaml:"max_speed"`                 // 0 = uncapped
	AutoRestartDelay       float64 `yaml:"auto_restart_delay"`        // Seconds after death, 0 = wait for input
}

// WorldConfig defines segment generation.
type WorldConfig struct {
	SegmentLength   float64        `yaml:"segment_length"`
	InitialLength   float64        `yaml:"initial_length"` // World generated up front
	Lookahead       float64        `yaml:"lookahead"`      // Keep segments this far ahead
	Trailing        float64        `yaml:"trailing"`       // Reclaim segments this far behind
	SafeSegments    int            `yaml:"safe_segments"`  // Obstacle-free segments at start
	LaneProbability float64        `yaml:"lane_probability"`
	KeepLaneOpen    bool           `yaml:"keep_lane_open"`
	ObstacleDepth   float64        `yaml:"obstacle_depth"` // Extent of an obstacle along Z
	ObstacleTypes   []ObstacleType `yaml:"obstacle_types"`
	Pickup          PickupConfig   `yaml:"pickup"`
}

// ObstacleType is one entry of the uniformly sampled obstacle list.
type ObstacleType struct {
	Name   string `yaml:"name"`
	Damage int    `yaml:"damage"`
	Glyph  string `yaml:"glyph"`
}

// PickupConfig defines heal pickups placed in free lanes.
type PickupConfig struct {
	Chance float64 `yaml:"chance"`
	Amount int     `yaml:"amount"`
}

// LaneCount returns the number of configured lanes.
func (p PlayerConfig) LaneCount() int {
	return len(p.Lanes)
}

// Clone returns a deep copy so callers can adjust presets without sharing slices.
func (c RunnerConfig) Clone() RunnerConfig {
	out := c
	out.Player.Lanes = append([]float64(nil), c.Player.Lanes...)
	out.World.ObstacleTypes = append([]ObstacleType(nil), c.World.ObstacleTypes...)
	return out
}
