package config

import (
	"errors"
	"fmt"
)

// Validate reports every setting that would make the runner misbehave.
func (c RunnerConfig) Validate() error {
	var errs []error

	p := c.Player
	if len(p.Lanes) == 0 {
		errs = append(errs, errors.New("player.lanes: at least one lane is required"))
	}
	for i := 1; i < len(p.Lanes); i++ {
		if p.Lanes[i] <= p.Lanes[i-1] {
			errs = append(errs, fmt.Errorf("player.lanes: offsets must increase left to right (index %d)", i))
			break
		}
	}
	if p.LaneSwapDuration <= 0 {
		errs = append(errs, errors.New("player.lane_swap_duration: must be positive"))
	}
	if p.JumpDuration <= 0 {
		errs = append(errs, errors.New("player.jump_duration: must be positive"))
	}
	if p.JumpHeight < 0 || p.JumpLength < 0 {
		errs = append(errs, errors.New("player.jump_height/jump_length: must not be negative"))
	}
	if p.MaxHealth <= 0 {
		errs = append(errs, errors.New("player.max_health: must be positive"))
	}
	if p.StartHealth <= 0 || p.StartHealth > p.MaxHealth {
		errs = append(errs, fmt.Errorf("player.start_health: must be in [1, %d]", p.MaxHealth))
	}

	k := c.Clock
	if k.BaseSpeed <= 0 {
		errs = append(errs, errors.New("clock.base_speed: must be positive"))
	}
	if k.SpeedIncreasePerSecond < 0 {
		errs = append(errs, errors.New("clock.speed_increase_per_second: must not be negative"))
	}
	if k.MaxSpeed != 0 && k.MaxSpeed < k.BaseSpeed {
		errs = append(errs, errors.New("clock.max_speed: must be 0 or at least base_speed"))
	}
	if k.AutoRestartDelay < 0 {
		errs = append(errs, errors.New("clock.auto_restart_delay: must not be negative"))
	}

	w := c.World
	if w.SegmentLength <= 0 {
		errs = append(errs, errors.New("world.segment_length: must be positive"))
	}
	if w.Lookahead < w.SegmentLength {
		errs = append(errs, errors.New("world.lookahead: must be at least one segment"))
	}
	if w.Trailing < 0 || w.InitialLength < 0 || w.SafeSegments < 0 {
		errs = append(errs, errors.New("world.trailing/initial_length/safe_segments: must not be negative"))
	}
	if w.LaneProbability < 0 || w.LaneProbability > 1 {
		errs = append(errs, errors.New("world.lane_probability: must be in [0, 1]"))
	}
	if w.ObstacleDepth <= 0 || w.ObstacleDepth > w.SegmentLength {
		errs = append(errs, errors.New("world.obstacle_depth: must be in (0, segment_length]"))
	}
	for i, t := range w.ObstacleTypes {
		if t.Damage < 0 {
			errs = append(errs, fmt.Errorf("world.obstacle_types[%d]: damage must not be negative", i))
		}
	}
	if w.Pickup.Chance < 0 || w.Pickup.Chance > 1 {
		errs = append(errs, errors.New("world.pickup.chance: must be in [0, 1]"))
	}
	if w.Pickup.Amount < 0 {
		errs = append(errs, errors.New("world.pickup.amount: must not be negative"))
	}

	return errors.Join(errs...)
}
