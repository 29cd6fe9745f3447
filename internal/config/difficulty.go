package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// Description returns a one-line summary for menus and help.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slower start, gentle acceleration, sparse obstacles"
	case DifficultyNormal:
		return "Config defaults"
	case DifficultyHard:
		return "Fast start, steep acceleration, crowded lanes"
	case DifficultyFixed:
		return "Constant speed, no progression"
	default:
		return ""
	}
}

// ApplyPreset returns a copy of cfg adjusted for the preset.
func ApplyPreset(cfg RunnerConfig, preset DifficultyPreset) RunnerConfig {
	out := cfg.Clone()

	switch preset {
	case DifficultyEasy:
		out.Clock.BaseSpeed *= 0.8
		out.Clock.SpeedIncreasePerSecond *= 0.5
		out.World.LaneProbability = clampF(out.World.LaneProbability-0.2, 0, 1)
		out.World.Pickup.Chance = clampF(out.World.Pickup.Chance*2, 0, 1)
	case DifficultyHard:
		out.Clock.BaseSpeed *= 1.3
		out.Clock.SpeedIncreasePerSecond *= 1.5
		out.World.LaneProbability = clampF(out.World.LaneProbability+0.15, 0, 1)
		out.World.Pickup.Chance /= 2
	case DifficultyFixed:
		out.Clock.Acceleration = false
	}

	if out.Clock.MaxSpeed != 0 && out.Clock.MaxSpeed < out.Clock.BaseSpeed {
		out.Clock.MaxSpeed = out.Clock.BaseSpeed
	}
	return out
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
