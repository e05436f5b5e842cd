package engine

import "math"

// Snapshot flattens a State into primitive fields for determinism testing
// and replay comparison. Two states that behave identically produce equal
// snapshots.
type Snapshot struct {
	ObjCount        int
	Score           float64
	ConsecutiveHits int
	Multiplier      float64
	Seed            int64
	GameEnd         bool

	CircleCount   int
	BgCircleCount int
	TailCount     int

	// Per circle: lane, cy, hasTail (1/0)
	CircleData []float64
	// Per tail: lane, y1, y2, isPlayed (1/0)
	TailData []float64

	PlayedCount   int
	FinishedCount int
	ExitCount     int
}

// TakeSnapshot captures the current state.
func TakeSnapshot(s State) Snapshot {
	circleData := make([]float64, 0, len(s.Circles)*3)
	for _, c := range s.Circles {
		hasTail := 0.0
		if c.HasTail {
			hasTail = 1.0
		}
		circleData = append(circleData, float64(c.Lane), c.CY, hasTail)
	}

	tailData := make([]float64, 0, len(s.Tails)*4)
	for _, t := range s.Tails {
		played := 0.0
		if t.IsPlayed {
			played = 1.0
		}
		tailData = append(tailData, float64(t.Lane), t.Y1, t.Y2, played)
	}

	return Snapshot{
		ObjCount:        s.ObjCount,
		Score:           s.Score,
		ConsecutiveHits: s.ConsecutiveHits,
		Multiplier:      s.Multiplier,
		Seed:            s.Seed,
		GameEnd:         s.GameEnd,
		CircleCount:     len(s.Circles),
		BgCircleCount:   len(s.BgCircles),
		TailCount:       len(s.Tails),
		CircleData:      circleData,
		TailData:        tailData,
		PlayedCount:     len(s.Frame.Played),
		FinishedCount:   len(s.Frame.Finished),
		ExitCount:       len(s.Frame.Exit),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.ObjCount)
	h = h*31 + math.Float64bits(snap.Score)
	h = h*31 + uint64(snap.ConsecutiveHits)
	h = h*31 + math.Float64bits(snap.Multiplier)
	h = h*31 + uint64(snap.Seed)
	if snap.GameEnd {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.CircleCount)
	h = h*31 + uint64(snap.BgCircleCount)
	h = h*31 + uint64(snap.TailCount)

	for _, v := range snap.CircleData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.TailData {
		h = h*31 + math.Float64bits(v)
	}

	h = h*31 + uint64(snap.PlayedCount)
	h = h*31 + uint64(snap.FinishedCount)
	h = h*31 + uint64(snap.ExitCount)
	return h
}
