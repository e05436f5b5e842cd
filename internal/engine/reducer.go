package engine

import (
	"fmt"
	"math"
)

// Reduce applies a to s. Once a state is terminal it is returned
// unchanged, no matter which action arrives; an ended game is inert, not
// broken. The guard checks the pre-action state, so the end-of-game
// snapshot is stable forever after.
func Reduce(s State, a Action) State {
	if s.GameEnd {
		return s
	}
	return apply(s, a)
}

// apply dispatches on the action variant. Every branch returns a fresh
// state; the input is never mutated.
func apply(s State, a Action) State {
	switch a := a.(type) {
	case Tick:
		return tick(s)
	case CreateCircle:
		return createCircle(s, a)
	case CreateBgCircle:
		return createBgCircle(s, a)
	case PressKey:
		return pressKey(s, a.Lane)
	case HoldKey:
		return holdKey(s, a.Lane)
	case ReleaseKey:
		return releaseKey(s, a.Lane)
	case EndGame:
		next := s.clone()
		next.GameEnd = true
		return next
	default:
		return s
	}
}

// tick advances every entity by one movement step and settles the frame:
// expired circles and tails move to the exit set, circles past the
// scoring window count as a miss, played tails shrink toward their head
// and complete when the ends meet.
func tick(s State) State {
	r := s.Rules
	next := s.clone()
	next.Frame = FrameEvents{}

	var bgs []BgCircle
	for _, bg := range s.BgCircles {
		bg.CY += r.Step
		if !r.IsExpired(bg.CY) {
			bgs = append(bgs, bg)
		}
	}
	next.BgCircles = bgs

	var circles []Circle
	var exit []string
	miss := false
	for _, c := range s.Circles {
		c.CY += r.Step
		switch {
		case r.IsExpired(c.CY):
			exit = append(exit, c.ID)
		case r.IsMissed(c.CY):
			miss = true
			circles = append(circles, c)
		default:
			circles = append(circles, c)
		}
	}
	next.Circles = circles

	var tails, finished []Tail
	for _, t := range s.Tails {
		if t.IsPlayed {
			// The start-note signal is one-shot: it was emitted for the
			// frame the hold began on, clear it now.
			t.IsStartNote = false
			// Head stops at the target row, trailing end catches up.
			t.Y1 = math.Min(t.Y1+r.Step, r.TargetCY)
			t.Y2 = math.Min(t.Y2+r.Step, t.Y1)
		} else {
			t.Y1 += r.Step
			t.Y2 += r.Step
		}
		switch {
		case t.IsPlayed && TailFullyPlayed(t):
			finished = append(finished, t)
		case r.IsExpired(t.Y2):
			exit = append(exit, t.ID)
		default:
			tails = append(tails, t)
		}
	}
	next.Tails = tails

	next.ConsecutiveHits, next.Multiplier = advanceCombo(miss, s.ConsecutiveHits, len(finished))
	next.Score = s.Score + float64(len(finished))*10*next.Multiplier
	next.Frame.Finished = finished
	next.Frame.Exit = exit
	return next
}

// createCircle spawns a circle at the top of the board and, for notes
// longer than the short-note threshold, a paired tail extending upward.
// The object counter advances once for the pair, so "circleN" and "tailN"
// share a number.
func createCircle(s State, a CreateCircle) State {
	r := s.Rules
	next := s.clone()

	lane := pitchLane(a.Note.Pitch, a.MinPitch, a.MaxPitch)
	units := r.UnitsFor(a.Note.Duration())

	c := Circle{
		ID:      fmt.Sprintf("circle%d", s.ObjCount),
		Lane:    lane,
		CY:      r.SpawnCY,
		Radius:  r.Radius,
		Color:   LaneColor(lane),
		Note:    a.Note,
		HasTail: units > r.ShortNote,
	}
	next.Circles = append(next.Circles, c)

	if c.HasTail {
		next.Tails = append(next.Tails, Tail{
			ID:       fmt.Sprintf("tail%d", s.ObjCount),
			Lane:     lane,
			Y1:       r.SpawnCY,
			Y2:       r.SpawnCY - units,
			Color:    c.Color,
			CircleID: c.ID,
			Note:     a.Note,
		})
	}
	next.ObjCount = s.ObjCount + 1
	return next
}

// createBgCircle appends an ambient circle already at the target row, so
// the audio collaborator plays it on the next frame instead of waiting
// for it to fall.
func createBgCircle(s State, a CreateBgCircle) State {
	next := s.clone()
	next.BgCircles = append(next.BgCircles, BgCircle{
		CY:   s.Rules.TargetCY,
		Note: a.Note,
	})
	return next
}

// pressKey taps a lane. Tailed circles must be held, so an aligned tailed
// circle makes the whole press a no-op. With no aligned circle at all the
// press is a miss: the combo resets and a random filler note spawns.
func pressKey(s State, lane int) State {
	r := s.Rules

	var aligned []Circle
	for _, c := range s.Circles {
		if r.IsAligned(c, lane) {
			if c.HasTail {
				return s
			}
			aligned = append(aligned, c)
		}
	}

	if len(aligned) == 0 {
		return spawnFiller(s.clone())
	}

	next := s.clone()
	next.Circles = next.Circles[:0]
	for _, c := range s.Circles {
		if !r.IsAligned(c, lane) {
			next.Circles = append(next.Circles, c)
		}
	}
	next.Frame.Played = append(next.Frame.Played, aligned...)
	next.ConsecutiveHits, next.Multiplier = advanceCombo(false, s.ConsecutiveHits, 1)
	next.Score = s.Score + float64(len(aligned))*10*next.Multiplier
	return next
}

// holdKey starts holding a lane. Aligned tailed circles move to the
// played set and their tails begin consuming; score and combo are settled
// later, by the tick that completes the tail. Without an aligned tailed
// circle the hold is a no-op and the caller should have pressed instead.
func holdKey(s State, lane int) State {
	r := s.Rules

	started := make(map[string]bool)
	for _, c := range s.Circles {
		if r.IsAligned(c, lane) && c.HasTail {
			started[c.ID] = true
		}
	}
	if len(started) == 0 {
		return s
	}

	next := s.clone()
	next.Circles = next.Circles[:0]
	for _, c := range s.Circles {
		if started[c.ID] {
			next.Frame.Played = append(next.Frame.Played, c)
		} else {
			next.Circles = append(next.Circles, c)
		}
	}
	for i := range next.Tails {
		if started[next.Tails[i].CircleID] {
			next.Tails[i].IsPlayed = true
			next.Tails[i].IsStartNote = true
		}
	}
	return next
}

// releaseKey ends a hold. A tail whose trailing end is still inside the
// scoring window keeps playing and resolves on a later tick; one released
// outside the window stops playing and counts as a miss. With no played
// tail in the lane the release is a no-op.
func releaseKey(s State, lane int) State {
	r := s.Rules
	next := s.clone()

	released := false
	missed := false
	for i := range next.Tails {
		t := &next.Tails[i]
		if t.Lane != lane || !t.IsPlayed {
			continue
		}
		released = true
		if r.IsTailEndAligned(*t, lane) {
			continue
		}
		t.IsPlayed = false
		missed = true
	}

	if !released {
		return s
	}
	if missed {
		next = spawnFiller(next)
	}
	return next
}

// spawnFiller handles a miss on an already-cloned state: the seed
// advances, the combo resets, and a filler note derived from the new
// seed joins the background circles at the target row.
func spawnFiller(next State) State {
	next.Seed = Hash(next.Seed)
	next.ConsecutiveHits, next.Multiplier = advanceCombo(true, 0, 0)
	next.BgCircles = append(next.BgCircles, BgCircle{
		CY:   next.Rules.TargetCY,
		Note: RandomNote(next.Seed, next.Rules.Filler),
	})
	return next
}
