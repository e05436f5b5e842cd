package config

import (
	_ "embed"
)

//go:embed defaults/rhythm.yaml
var defaultRhythmYAML []byte

// DefaultConfig returns the default rhythm configuration.
func DefaultConfig() RhythmConfig {
	return RhythmConfig{
		Board: BoardConfig{
			ExpireLimit: 400,
			TargetCY:    350,
			TargetRange: 20,
			SpawnCY:     0,
			Radius:      15,
		},
		Timing: TimingConfig{
			TickRate:       60,
			Step:           1,
			ShortNoteUnits: 1,
		},
		Filler: FillerConfig{
			Instruments: []string{"piano", "guitar", "marimba", "strings"},
			MinVelocity: 40,
			MaxVelocity: 90,
			MinPitch:    40,
			MaxPitch:    80,
			MinDuration: 0.1,
			MaxDuration: 0.5,
		},
		Keys: KeyBindings{
			Lanes:   []string{"h", "j", "k", "l"},
			Restart: "r",
		},
	}
}
