package engine

import "math"

// Linear congruential generator parameters (31-bit, glibc-style).
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Hash advances a 31-bit LCG seed to the next seed in the sequence.
// The arithmetic is done in 64 bits so the result is identical on every
// platform. Same seed in, same seed out; there is no hidden state.
func Hash(seed int64) int64 {
	return (lcgMultiplier*seed + lcgIncrement) % lcgModulus
}

// ScaleToRange maps a hashed seed linearly onto [min, max].
func ScaleToRange(hashValue int64, min, max float64) float64 {
	return min + (max-min)*float64(hashValue)/float64(lcgModulus-1)
}

// RandomNote derives a filler note from a single hashed seed. Every field
// is scaled from the same seed, so replaying a seed sequence reproduces
// the exact same notes.
func RandomNote(seed int64, f FillerRules) NoteData {
	idx := int(math.Round(ScaleToRange(seed, 0, float64(len(f.Instruments)-1))))
	return NoteData{
		UserPlayed: false,
		Instrument: f.Instruments[idx],
		Velocity:   int(math.Round(ScaleToRange(seed, float64(f.MinVelocity), float64(f.MaxVelocity)))),
		Pitch:      int(math.Round(ScaleToRange(seed, float64(f.MinPitch), float64(f.MaxPitch)))),
		Start:      0,
		End:        ScaleToRange(seed, f.MinDuration, f.MaxDuration),
	}
}
