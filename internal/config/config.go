// Package config provides YAML-based configuration loading for the
// rhythm platform: board geometry, timing, filler note ranges, and key
// bindings.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

// RhythmConfig contains all tunable parameters of the game.
type RhythmConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
	Filler FillerConfig `yaml:"filler"`
	Keys   KeyBindings  `yaml:"keys"`
}

// BoardConfig defines the board geometry in movement units.
type BoardConfig struct {
	ExpireLimit float64 `yaml:"expire_limit"`
	TargetCY    float64 `yaml:"target_cy"`
	TargetRange float64 `yaml:"target_range"`
	SpawnCY     float64 `yaml:"spawn_cy"`
	Radius      float64 `yaml:"radius"`
}

// TimingConfig defines the simulation timing.
type TimingConfig struct {
	TickRate       int     `yaml:"tick_rate"`
	Step           float64 `yaml:"step"`
	ShortNoteUnits float64 `yaml:"short_note_units"`
}

// FillerConfig bounds the randomly generated miss-filler notes.
type FillerConfig struct {
	Instruments []string `yaml:"instruments"`
	MinVelocity int      `yaml:"min_velocity"`
	MaxVelocity int      `yaml:"max_velocity"`
	MinPitch    int      `yaml:"min_pitch"`
	MaxPitch    int      `yaml:"max_pitch"`
	MinDuration float64  `yaml:"min_duration"`
	MaxDuration float64  `yaml:"max_duration"`
}

// KeyBindings maps keys to lanes plus the restart key.
// Lanes must hold exactly one key per column.
type KeyBindings struct {
	Lanes   []string `yaml:"lanes"`
	Restart string   `yaml:"restart"`
}

// Validate checks the config for values the engine cannot work with.
func (c RhythmConfig) Validate() error {
	if c.Timing.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Timing.TickRate)
	}
	if c.Timing.Step <= 0 {
		return fmt.Errorf("config: step must be positive, got %v", c.Timing.Step)
	}
	if c.Board.TargetCY <= c.Board.SpawnCY {
		return fmt.Errorf("config: target_cy %v must be below spawn_cy %v", c.Board.TargetCY, c.Board.SpawnCY)
	}
	if c.Board.ExpireLimit < c.Board.TargetCY+c.Board.TargetRange {
		return fmt.Errorf("config: expire_limit %v is inside the scoring window", c.Board.ExpireLimit)
	}
	if len(c.Keys.Lanes) != engine.NumLanes {
		return fmt.Errorf("config: %d lane keys, want %d", len(c.Keys.Lanes), engine.NumLanes)
	}
	seen := make(map[string]bool)
	for _, k := range c.Keys.Lanes {
		if k == "" || seen[k] {
			return fmt.Errorf("config: lane keys must be distinct and non-empty")
		}
		seen[k] = true
	}
	if len(c.Filler.Instruments) == 0 {
		return fmt.Errorf("config: filler needs at least one instrument")
	}
	return nil
}

// Rules converts the config into the engine's rules value.
func (c RhythmConfig) Rules() engine.Rules {
	return engine.Rules{
		ExpireLimit: c.Board.ExpireLimit,
		TargetCY:    c.Board.TargetCY,
		TargetRange: c.Board.TargetRange,
		SpawnCY:     c.Board.SpawnCY,
		Step:        c.Timing.Step,
		Radius:      c.Board.Radius,
		TickRate:    c.Timing.TickRate,
		ShortNote:   c.Timing.ShortNoteUnits,
		Filler: engine.FillerRules{
			Instruments: c.Filler.Instruments,
			MinVelocity: c.Filler.MinVelocity,
			MaxVelocity: c.Filler.MaxVelocity,
			MinPitch:    c.Filler.MinPitch,
			MaxPitch:    c.Filler.MaxPitch,
			MinDuration: c.Filler.MinDuration,
			MaxDuration: c.Filler.MaxDuration,
		},
	}
}
