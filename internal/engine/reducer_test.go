package engine

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// stateWithCircle returns a state holding a single plain circle aligned at
// the target row in the given lane.
func stateWithCircle(lane int) State {
	s := NewState(DefaultRules(), 2026)
	s.Circles = append(s.Circles, Circle{
		ID:    "circle0",
		Lane:  lane,
		CY:    s.Rules.TargetCY,
		Color: LaneColor(lane),
		Note:  NoteData{UserPlayed: true, Instrument: "piano", Velocity: 80, Pitch: 60},
	})
	s.ObjCount = 1
	return s
}

func TestTerminalStateIsIdempotent(t *testing.T) {
	ended := Reduce(stateWithCircle(0), EndGame{})
	if !ended.GameEnd {
		t.Fatal("EndGame did not set the terminal flag")
	}

	actions := []Action{
		Tick{},
		CreateCircle{Note: NoteData{Pitch: 60}, MinPitch: 40, MaxPitch: 80},
		CreateBgCircle{Note: NoteData{Instrument: "piano"}},
		PressKey{Lane: 0},
		HoldKey{Lane: 0},
		ReleaseKey{Lane: 0},
		EndGame{},
	}
	for _, a := range actions {
		got := Reduce(ended, a)
		if !reflect.DeepEqual(got, ended) {
			t.Errorf("Reduce on ended state changed it for %T", a)
		}
	}
}

func TestCleanHitScoresAndRemovesCircle(t *testing.T) {
	s := stateWithCircle(0)
	next := Reduce(s, PressKey{Lane: 0})

	if len(next.Circles) != 0 {
		t.Errorf("hit circle still active, %d circles remain", len(next.Circles))
	}
	if len(next.Frame.Played) != 1 || next.Frame.Played[0].ID != "circle0" {
		t.Errorf("played set = %+v, want exactly circle0", next.Frame.Played)
	}
	if next.ConsecutiveHits != 1 {
		t.Errorf("combo = %d, want 1", next.ConsecutiveHits)
	}
	if delta := next.Score - s.Score; delta != 10*next.Multiplier {
		t.Errorf("score delta = %v, want %v", delta, 10*next.Multiplier)
	}
	if next.Seed != s.Seed {
		t.Error("a clean hit must not advance the RNG seed")
	}
}

func TestPressMissSpawnsFiller(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	s.ConsecutiveHits = 23
	s.Multiplier = MultiplierFor(23)

	next := Reduce(s, PressKey{Lane: 1})

	if next.ConsecutiveHits != 0 || next.Multiplier != 1.0 {
		t.Errorf("miss did not reset combo: hits=%d mult=%v", next.ConsecutiveHits, next.Multiplier)
	}
	if len(next.BgCircles) != len(s.BgCircles)+1 {
		t.Errorf("background circles grew by %d, want 1", len(next.BgCircles)-len(s.BgCircles))
	}
	if next.Seed != Hash(s.Seed) {
		t.Errorf("seed = %d, want Hash(old) = %d", next.Seed, Hash(s.Seed))
	}
	if next.Score != s.Score {
		t.Error("a missed press must not change the score")
	}

	filler := next.BgCircles[len(next.BgCircles)-1]
	if filler.CY != s.Rules.TargetCY {
		t.Errorf("filler spawned at %v, want the target row %v", filler.CY, s.Rules.TargetCY)
	}
	if want := RandomNote(next.Seed, s.Rules.Filler); filler.Note != want {
		t.Errorf("filler note = %+v, want %+v", filler.Note, want)
	}
}

func TestNegativeSeedIsNormalized(t *testing.T) {
	s := NewState(DefaultRules(), -5)
	if s.Seed < 0 || s.Seed >= 1<<31 {
		t.Fatalf("seed = %d, want normalized into [0, 2^31)", s.Seed)
	}

	// A miss on the first frame must walk the RNG, not panic on a
	// negative instrument index.
	next := Reduce(Reduce(s, Tick{}), PressKey{Lane: 0})
	if len(next.BgCircles) != 1 {
		t.Fatalf("miss spawned %d filler circles, want 1", len(next.BgCircles))
	}
	filler := next.BgCircles[0].Note
	if filler.Instrument == "" {
		t.Error("filler note has no instrument")
	}
	f := s.Rules.Filler
	if filler.Velocity < f.MinVelocity || filler.Velocity > f.MaxVelocity {
		t.Errorf("filler velocity %d outside [%d, %d]", filler.Velocity, f.MinVelocity, f.MaxVelocity)
	}
	if filler.Pitch < f.MinPitch || filler.Pitch > f.MaxPitch {
		t.Errorf("filler pitch %d outside [%d, %d]", filler.Pitch, f.MinPitch, f.MaxPitch)
	}

	// Equal seeds modulo 2^31 start identical runs regardless of sign.
	a, b := NewState(DefaultRules(), -5), NewState(DefaultRules(), -5+(1<<31))
	if a.Seed != b.Seed {
		t.Errorf("seeds %d and %d diverged: %d vs %d", int64(-5), int64(-5+(1<<31)), a.Seed, b.Seed)
	}
}

func TestPressOnTailedCircleIsNoop(t *testing.T) {
	s := stateWithCircle(0)
	s.Circles[0].HasTail = true

	next := Reduce(s, PressKey{Lane: 0})
	if !reflect.DeepEqual(next, s) {
		t.Error("press on an aligned tailed circle must be a no-op")
	}
}

func TestHoldKeyStartsTail(t *testing.T) {
	s := stateWithCircle(2)
	s.Circles[0].HasTail = true
	s.Tails = append(s.Tails, Tail{
		ID:       "tail0",
		Lane:     2,
		Y1:       s.Rules.TargetCY,
		Y2:       s.Rules.TargetCY - 80,
		CircleID: "circle0",
	})

	next := Reduce(s, HoldKey{Lane: 2})

	if len(next.Circles) != 0 {
		t.Error("held circle should move out of the active set")
	}
	if len(next.Frame.Played) != 1 {
		t.Errorf("played set has %d entries, want 1", len(next.Frame.Played))
	}
	tl := next.Tails[0]
	if !tl.IsPlayed || !tl.IsStartNote {
		t.Errorf("tail flags = played:%v start:%v, want both true", tl.IsPlayed, tl.IsStartNote)
	}
	if next.Score != s.Score || next.ConsecutiveHits != s.ConsecutiveHits {
		t.Error("holding must not score; completion does, on a later tick")
	}
}

func TestHoldKeyWithoutTailedCircleIsNoop(t *testing.T) {
	s := stateWithCircle(0) // plain circle, no tail
	next := Reduce(s, HoldKey{Lane: 0})
	if !reflect.DeepEqual(next, s) {
		t.Error("hold with no aligned tailed circle must be a no-op")
	}
}

func TestReleaseInsideWindowKeepsPlaying(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	s.ConsecutiveHits = 12
	s.Multiplier = MultiplierFor(12)
	s.Tails = append(s.Tails, Tail{
		ID: "tail0", Lane: 1,
		Y1: 350, Y2: 340,
		IsPlayed: true, CircleID: "circle0",
	})

	next := Reduce(s, ReleaseKey{Lane: 1})

	if !next.Tails[0].IsPlayed {
		t.Error("tail released inside the window must keep playing")
	}
	if next.ConsecutiveHits != 12 {
		t.Errorf("clean release changed combo to %d", next.ConsecutiveHits)
	}
	if next.Seed != s.Seed || len(next.BgCircles) != 0 {
		t.Error("clean release must not spawn a filler")
	}
}

func TestReleaseOutsideWindowIsMiss(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	s.ConsecutiveHits = 12
	s.Multiplier = MultiplierFor(12)
	s.Tails = append(s.Tails, Tail{
		ID: "tail0", Lane: 1,
		Y1: 250, Y2: 150, // trailing end far above the window
		IsPlayed: true, CircleID: "circle0",
	})

	next := Reduce(s, ReleaseKey{Lane: 1})

	if next.Tails[0].IsPlayed {
		t.Error("tail released outside the window must stop playing")
	}
	if next.ConsecutiveHits != 0 || next.Multiplier != 1.0 {
		t.Error("early release must reset the combo")
	}
	if len(next.BgCircles) != 1 {
		t.Errorf("early release spawned %d fillers, want 1", len(next.BgCircles))
	}
	if next.Seed != Hash(s.Seed) {
		t.Error("early release must advance the seed exactly once")
	}
}

func TestReleaseWithNothingHeldIsNoop(t *testing.T) {
	s := stateWithCircle(0)
	next := Reduce(s, ReleaseKey{Lane: 0})
	if !reflect.DeepEqual(next, s) {
		t.Error("release with nothing held must be a no-op")
	}
}

func TestCreateCirclePairsTailForLongNotes(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	note := NoteData{UserPlayed: true, Instrument: "piano", Velocity: 90, Pitch: 60, Start: 4, End: 6}

	next := Reduce(s, CreateCircle{Note: note, MinPitch: 40, MaxPitch: 80})

	if next.ObjCount != 1 {
		t.Errorf("objCount = %d, want 1 (one increment per pair)", next.ObjCount)
	}
	c := next.Circles[0]
	if c.ID != "circle0" || !c.HasTail || c.Lane != 2 {
		t.Errorf("circle = %+v, want id circle0, lane 2, tailed", c)
	}
	if c.CY != s.Rules.SpawnCY {
		t.Errorf("circle spawned at %v, want the top %v", c.CY, s.Rules.SpawnCY)
	}

	if len(next.Tails) != 1 {
		t.Fatalf("want a paired tail, got %d", len(next.Tails))
	}
	tl := next.Tails[0]
	if tl.ID != "tail0" || tl.CircleID != "circle0" {
		t.Errorf("tail identity = %s/%s, want tail0/circle0", tl.ID, tl.CircleID)
	}
	// 2 seconds at 60 ticks/s and step 1 is 120 units of tail.
	if tl.Y1 != s.Rules.SpawnCY || tl.Y2 != s.Rules.SpawnCY-120 {
		t.Errorf("tail span = [%v, %v], want [0, -120]", tl.Y2, tl.Y1)
	}
}

func TestCreateCircleShortNoteHasNoTail(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	note := NoteData{UserPlayed: true, Pitch: 45, Start: 1, End: 1.01}

	next := Reduce(s, CreateCircle{Note: note, MinPitch: 40, MaxPitch: 80})
	if next.Circles[0].HasTail || len(next.Tails) != 0 {
		t.Error("a short note must not spawn a tail")
	}
}

func TestCreateBgCircleSpawnsAtTarget(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	next := Reduce(s, CreateBgCircle{Note: NoteData{Instrument: "marimba", Pitch: 50}})

	if len(next.BgCircles) != 1 {
		t.Fatalf("want one background circle, got %d", len(next.BgCircles))
	}
	if next.BgCircles[0].CY != s.Rules.TargetCY {
		t.Errorf("background circle at %v, want the target row", next.BgCircles[0].CY)
	}
	if next.ObjCount != 0 {
		t.Error("background circles carry no identity and consume no counter")
	}
}

func TestMonotonicObjectIDs(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	for i := 0; i < 6; i++ {
		note := NoteData{UserPlayed: true, Pitch: 40 + i*8, Start: float64(i), End: float64(i) + 2}
		s = Reduce(s, CreateCircle{Note: note, MinPitch: 40, MaxPitch: 80})
		s = Reduce(s, CreateBgCircle{Note: NoteData{Pitch: 50}})
	}

	seen := make(map[string]bool)
	checkID := func(id, prefix string) {
		if seen[id] {
			t.Errorf("duplicate live id %s", id)
		}
		seen[id] = true

		var n int
		if _, err := fmt.Sscanf(id, prefix+"%d", &n); err != nil {
			t.Fatalf("id %s does not embed a counter: %v", id, err)
		}
		if n >= s.ObjCount {
			t.Errorf("id %s embeds %d, not below objCount %d", id, n, s.ObjCount)
		}
	}
	for _, c := range s.Circles {
		checkID(c.ID, "circle")
	}
	for _, tl := range s.Tails {
		if !strings.HasPrefix(tl.ID, "tail") {
			t.Errorf("tail id %s has the wrong prefix", tl.ID)
		}
		checkID(tl.ID, "tail")
	}
}

func TestTickClearsStartNoteAndTransients(t *testing.T) {
	s := stateWithCircle(2)
	s.Circles[0].HasTail = true
	s.Tails = append(s.Tails, Tail{ID: "tail0", Lane: 2, Y1: 350, Y2: 200, CircleID: "circle0"})

	held := Reduce(s, HoldKey{Lane: 2})
	if len(held.Frame.Played) == 0 || !held.Tails[0].IsStartNote {
		t.Fatal("hold setup failed")
	}

	next := Reduce(held, Tick{})
	if next.Tails[0].IsStartNote {
		t.Error("isStartNote is one-shot and must clear on the next tick")
	}
	if len(next.Frame.Played) != 0 {
		t.Error("played set must reset on tick")
	}
}

func TestTickExpiresCirclesIntoExit(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	s.Circles = append(s.Circles, Circle{ID: "circle0", Lane: 0, CY: 400})
	s.ObjCount = 1

	next := Reduce(s, Tick{})
	if len(next.Circles) != 0 {
		t.Error("expired circle should leave the active set")
	}
	if len(next.Frame.Exit) != 1 || next.Frame.Exit[0] != "circle0" {
		t.Errorf("exit set = %v, want [circle0]", next.Frame.Exit)
	}
}

func TestTickMissResetsCombo(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	s.ConsecutiveHits = 15
	s.Multiplier = MultiplierFor(15)
	s.Circles = append(s.Circles, Circle{ID: "circle0", Lane: 0, CY: 370.5})
	s.ObjCount = 1

	next := Reduce(s, Tick{})
	if next.ConsecutiveHits != 0 || next.Multiplier != 1.0 {
		t.Errorf("missed circle did not reset combo: hits=%d mult=%v",
			next.ConsecutiveHits, next.Multiplier)
	}
	// The circle keeps falling until it expires.
	if len(next.Circles) != 1 {
		t.Error("missed circle should stay active until it expires")
	}
}

func TestTailCompletionTakesExactTicks(t *testing.T) {
	r := DefaultRules()
	r.TargetCY = 100 // head already parked at the target
	s := NewState(r, 2026)
	s.Tails = append(s.Tails, Tail{
		ID: "tail0", Lane: 0,
		Y1: 100, Y2: 80,
		IsPlayed: true, CircleID: "circle0",
	})
	s.ObjCount = 1

	for i := 0; i < 19; i++ {
		s = Reduce(s, Tick{})
		if len(s.Frame.Finished) != 0 {
			t.Fatalf("tail finished early, at tick %d", i+1)
		}
	}

	s = Reduce(s, Tick{})
	if len(s.Frame.Finished) != 1 || s.Frame.Finished[0].ID != "tail0" {
		t.Fatalf("tail did not finish on tick 20: %+v", s.Frame.Finished)
	}
	if len(s.Tails) != 0 {
		t.Error("finished tail must leave the active set")
	}
	if s.ConsecutiveHits != 1 {
		t.Errorf("completion should count one hit, combo = %d", s.ConsecutiveHits)
	}
	if s.Score != 10*s.Multiplier {
		t.Errorf("score = %v, want %v", s.Score, 10*s.Multiplier)
	}

	s = Reduce(s, Tick{})
	if len(s.Frame.Finished) != 0 {
		t.Error("a tail must appear in the finished set exactly once")
	}
}

func TestHoldThenCompleteScenario(t *testing.T) {
	s := NewState(DefaultRules(), 2026)
	note := NoteData{UserPlayed: true, Instrument: "piano", Velocity: 100, Pitch: 60, Start: 0, End: 2}
	s = Reduce(s, CreateCircle{Note: note, MinPitch: 40, MaxPitch: 80})

	// Fall to the target row.
	for i := 0; i < 350; i++ {
		s = Reduce(s, Tick{})
	}
	if len(s.Circles) != 1 || s.Circles[0].CY != 350 {
		t.Fatalf("circle not at target after 350 ticks: %+v", s.Circles)
	}

	s = Reduce(s, HoldKey{Lane: 2})
	if len(s.Tails) != 1 || !s.Tails[0].IsPlayed || !s.Tails[0].IsStartNote {
		t.Fatalf("hold did not start the tail: %+v", s.Tails)
	}

	scoreBefore := s.Score
	finishes := 0
	var finishTickScore float64
	for i := 0; i < 200 && len(s.Tails) > 0; i++ {
		s = Reduce(s, Tick{})
		if len(s.Frame.Finished) > 0 {
			finishes += len(s.Frame.Finished)
			finishTickScore = s.Score
		}
	}

	if finishes != 1 {
		t.Fatalf("tail finished %d times, want exactly once", finishes)
	}
	// The 120-unit tail had 120 units left to consume after the hold.
	if got := finishTickScore - scoreBefore; got != 10*s.Multiplier {
		t.Errorf("completion scored %v, want %v", got, 10*s.Multiplier)
	}
	if s.ConsecutiveHits != 1 {
		t.Errorf("combo = %d, want 1", s.ConsecutiveHits)
	}
}

func TestReducerDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := NewState(DefaultRules(), 12345)
		notes := []NoteData{
			{UserPlayed: true, Instrument: "piano", Velocity: 90, Pitch: 45, Start: 0, End: 0.01},
			{UserPlayed: true, Instrument: "piano", Velocity: 90, Pitch: 75, Start: 1, End: 3},
			{Instrument: "strings", Velocity: 60, Pitch: 55, Start: 2, End: 2.5},
		}
		for i := 0; i < 400; i++ {
			s = Reduce(s, Tick{})
			switch i {
			case 0:
				s = Reduce(s, CreateCircle{Note: notes[0], MinPitch: 45, MaxPitch: 75})
			case 60:
				s = Reduce(s, CreateCircle{Note: notes[1], MinPitch: 45, MaxPitch: 75})
			case 120:
				s = Reduce(s, CreateBgCircle{Note: notes[2]})
			case 200:
				s = Reduce(s, PressKey{Lane: 1}) // nothing aligned: miss filler
			case 350:
				s = Reduce(s, PressKey{Lane: 0})
			}
		}
		s = Reduce(s, EndGame{})
		return TakeSnapshot(s)
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("identical folds diverged: %d vs %d", a.Hash(), b.Hash())
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}
