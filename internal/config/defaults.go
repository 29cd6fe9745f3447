package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hard-coded runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Player: PlayerConfig{
			Lanes:            []float64{-2, 0, 2},
			LaneSwapDuration: 0.2,
			JumpHeight:       3,
			JumpLength:       9,
			JumpDuration:     0.9,
			Clearance:        1,
			MaxHealth:        100,
			StartHealth:      100,
		},
		Clock: ClockConfig{
			BaseSpeed:              10,
			SpeedIncreasePerSecond: 0.5,
			Acceleration:           true,
			MaxSpeed:               0,
			AutoRestartDelay:       0,
		},
		World: WorldConfig{
			SegmentLength:   6,
			InitialLength:   120,
			Lookahead:       60,
			Trailing:        12,
			SafeSegments:    3,
			LaneProbability: 0.7,
			KeepLaneOpen:    true,
			ObstacleDepth:   1,
			ObstacleTypes: []ObstacleType{
				{Name: "barrier", Damage: 25, Glyph: "▓"},
				{Name: "crate", Damage: 10, Glyph: "▒"},
			},
			Pickup: PickupConfig{
				Chance: 0.08,
				Amount: 15,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
