package engine

import (
	"math"
	"time"
)

// Rules carries the board geometry and timing constants the reducer needs.
// It lives inside State so every transition stays a pure function of its
// inputs; two states with the same rules, seed, and action stream evolve
// identically.
type Rules struct {
	ExpireLimit float64 // Positions past this leave the board
	TargetCY    float64 // Vertical position of the target row
	TargetRange float64 // Half-width of the scoring window around TargetCY
	SpawnCY     float64 // Vertical position where circles spawn
	Step        float64 // Movement units advanced per tick
	Radius      float64 // Circle radius in board units
	TickRate    int     // Simulation ticks per second
	ShortNote   float64 // Notes longer than this (in movement units) get a tail
	Filler      FillerRules
}

// FillerRules bounds the randomly generated miss-filler notes.
type FillerRules struct {
	Instruments []string
	MinVelocity int
	MaxVelocity int
	MinPitch    int
	MaxPitch    int
	MinDuration float64 // Seconds
	MaxDuration float64
}

// DefaultRules returns the standard board tuning.
func DefaultRules() Rules {
	return Rules{
		ExpireLimit: 400,
		TargetCY:    350,
		TargetRange: 20,
		SpawnCY:     0,
		Step:        1,
		Radius:      15,
		TickRate:    60,
		ShortNote:   1,
		Filler: FillerRules{
			Instruments: []string{"piano", "guitar", "marimba", "strings"},
			MinVelocity: 40,
			MaxVelocity: 90,
			MinPitch:    40,
			MaxPitch:    80,
			MinDuration: 0.1,
			MaxDuration: 0.5,
		},
	}
}

// IsExpired reports whether a position has fallen past the board limit.
func (r Rules) IsExpired(pos float64) bool {
	return pos > r.ExpireLimit
}

// IsMissed reports whether a circle position has fallen past the scoring
// window without being hit.
func (r Rules) IsMissed(cy float64) bool {
	return cy > r.TargetCY+r.TargetRange
}

// IsAligned reports whether a circle is hittable at the given lane.
func (r Rules) IsAligned(c Circle, lane int) bool {
	return c.Lane == lane &&
		c.CY >= r.TargetCY-r.TargetRange &&
		c.CY <= r.TargetCY+r.TargetRange
}

// IsTailEndAligned reports whether a tail's trailing end is still inside
// the scoring window at the given lane, i.e. a release now is clean.
func (r Rules) IsTailEndAligned(t Tail, lane int) bool {
	return t.Lane == lane &&
		t.Y2 >= r.TargetCY-r.TargetRange &&
		t.Y2 <= r.TargetCY
}

// TailFullyPlayed reports whether a tail has retracted to its head.
func TailFullyPlayed(t Tail) bool {
	return t.Y2 == t.Y1
}

// UnitsFor converts a duration in seconds to movement units.
func (r Rules) UnitsFor(seconds float64) float64 {
	return seconds * float64(r.TickRate) * r.Step
}

// TickInterval returns the wall-clock duration of one tick.
func (r Rules) TickInterval() time.Duration {
	return time.Second / time.Duration(r.TickRate)
}

// TravelTime returns how long a circle takes to fall from spawn to the
// target row.
func (r Rules) TravelTime() time.Duration {
	ticks := (r.TargetCY - r.SpawnCY) / r.Step
	return time.Duration(ticks) * r.TickInterval()
}

// MultiplierFor returns the combo multiplier for a consecutive-hit count:
// 1 + 0.2 per full ten hits, rounded to one decimal place.
func MultiplierFor(hits int) float64 {
	return math.Round((1+float64(hits/10)*0.2)*10) / 10
}

// advanceCombo computes the next consecutive-hit count and multiplier.
// A miss resets both to base; a hit grows the combo by additional.
func advanceCombo(miss bool, hits, additional int) (int, float64) {
	if miss {
		return 0, 1.0
	}
	h := hits + additional
	return h, MultiplierFor(h)
}

// pitchLane maps a pitch onto one of NumLanes equal-width bins across
// [minPitch, maxPitch], clamping to the outer bins.
func pitchLane(pitch, minPitch, maxPitch int) int {
	width := float64(maxPitch-minPitch) / float64(NumLanes)
	if width <= 0 {
		return 0
	}
	lane := int(float64(pitch-minPitch) / width)
	if lane < 0 {
		return 0
	}
	if lane >= NumLanes {
		return NumLanes - 1
	}
	return lane
}
