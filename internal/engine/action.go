package engine

// Action is the closed set of state transitions. The reducer matches the
// variants exhaustively; external collaborators only ever construct these
// values, they never transform state themselves.
type Action interface {
	isAction()
}

// Tick advances the whole board by one movement step, resolves expiry,
// misses, and tail completion, and resets the per-frame event sets.
type Tick struct{}

// CreateCircle spawns a playable circle (and its tail, for long notes) at
// the top of the board. MinPitch and MaxPitch are the global pitch bounds
// across all playable notes, used for lane binning.
type CreateCircle struct {
	Note     NoteData
	MinPitch int
	MaxPitch int
}

// CreateBgCircle appends an ambient circle directly at the target row, so
// it sounds on the very next frame.
type CreateBgCircle struct {
	Note NoteData
}

// PressKey taps a lane: resolves aligned plain circles, or counts a miss.
type PressKey struct {
	Lane int
}

// HoldKey begins holding a lane: starts aligned tailed circles.
type HoldKey struct {
	Lane int
}

// ReleaseKey ends holding a lane: clean inside the scoring window, a miss
// outside it.
type ReleaseKey struct {
	Lane int
}

// EndGame marks the state terminal. Every later action is swallowed.
type EndGame struct{}

func (Tick) isAction()           {}
func (CreateCircle) isAction()   {}
func (CreateBgCircle) isAction() {}
func (PressKey) isAction()       {}
func (HoldKey) isAction()        {}
func (ReleaseKey) isAction()     {}
func (EndGame) isAction()        {}
