// Package engine implements the rhythm game state machine: an immutable
// State snapshot, a closed set of actions that transform it, and a pure
// reducer that folds an ordered action stream into successive snapshots.
// The engine performs no I/O and never mutates a state in place; given the
// same initial seed and the same action sequence it produces the same
// sequence of snapshots.
package engine

// NumLanes is the number of playable columns on the board.
const NumLanes = 4

// NoteData describes a single song note.
type NoteData struct {
	UserPlayed bool    // Whether the player must hit this note
	Instrument string  // Instrument identifier for the audio collaborator
	Velocity   int     // MIDI velocity, 0-127
	Pitch      int     // MIDI note number
	Start      float64 // Start time in seconds within the song
	End        float64 // End time in seconds; End >= Start
}

// Duration returns the note length in seconds.
func (n NoteData) Duration() float64 {
	return n.End - n.Start
}

// Color is the lane colour tag carried by circles and tails.
// The renderer maps it to a terminal style.
type Color string

// Lane colours, one per pitch bin.
const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
)

// laneColors maps a lane index to its colour tag.
var laneColors = [NumLanes]Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// LaneColor returns the colour tag for a lane.
func LaneColor(lane int) Color {
	if lane < 0 || lane >= NumLanes {
		return ColorRed
	}
	return laneColors[lane]
}

// Circle is a falling playable note. Identity is the ID string, assigned
// from the state's object counter at spawn time and never reused.
type Circle struct {
	ID      string
	Lane    int     // Column index, 0..NumLanes-1
	CY      float64 // Vertical position in board units
	Radius  float64
	Color   Color
	Note    NoteData
	HasTail bool // True when a paired Tail was spawned with this circle
}

// BgCircle is an ambient note with no player interaction and no identity.
// It is spawned either from the song script (non-playable notes) or as a
// miss filler.
type BgCircle struct {
	CY   float64
	Note NoteData
}

// Tail is the sustained part of a long note, paired 1:1 with a circle.
// Y1 is the leading (lower) end, Y2 the trailing (upper) end; the tail is
// fully consumed when the two meet.
type Tail struct {
	ID          string
	Lane        int
	Y1          float64
	Y2          float64
	Color       Color
	IsPlayed    bool   // Currently being held correctly
	IsStartNote bool   // One-shot: begin the held sound this frame
	CircleID    string // The circle this tail was spawned with (read-only)
	Note        NoteData
}

// FrameEvents holds the per-frame transient sets the renderer and audio
// collaborator consume. They are reset at the start of every Tick.
type FrameEvents struct {
	Played   []Circle // Circles resolved by a key action this frame
	Finished []Tail   // Tails that completed naturally this frame
	Exit     []string // IDs of circles/tails that left the board this frame
}

// State is a full frame snapshot. It is the sole unit the reducer
// operates on; Reduce returns a fresh State and leaves its input intact.
type State struct {
	Rules Rules

	BgCircles []BgCircle
	Circles   []Circle
	Tails     []Tail
	Frame     FrameEvents

	ObjCount        int     // Monotonic id counter shared by circles and tails
	Score           float64 // Running score
	ConsecutiveHits int     // Combo: resolved notes since the last miss
	Multiplier      float64 // Derived from ConsecutiveHits, reset on miss
	Seed            int64   // Current RNG seed, advanced only on misses
	GameEnd         bool    // Terminal: once set, the state never changes
}

// NewState returns the initial state for a run. The seed is normalized
// into [0, 2^31) so callers may pass any int64, including negatives.
func NewState(rules Rules, seed int64) State {
	seed %= lcgModulus
	if seed < 0 {
		seed += lcgModulus
	}
	return State{
		Rules:      rules,
		Multiplier: 1.0,
		Seed:       seed,
	}
}

// clone returns a copy of s with fresh slices, so transition functions can
// append and reslice without aliasing the input state.
func (s State) clone() State {
	next := s
	next.BgCircles = append([]BgCircle(nil), s.BgCircles...)
	next.Circles = append([]Circle(nil), s.Circles...)
	next.Tails = append([]Tail(nil), s.Tails...)
	next.Frame = FrameEvents{
		Played:   append([]Circle(nil), s.Frame.Played...),
		Finished: append([]Tail(nil), s.Frame.Finished...),
		Exit:     append([]string(nil), s.Frame.Exit...),
	}
	return next
}
