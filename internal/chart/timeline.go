package chart

import (
	"sort"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

// Event is a spawn action with its absolute schedule time within the song.
type Event struct {
	At     time.Duration
	Action engine.Action
}

// Timeline is the pure scheduling plan for a song: what to spawn and
// when, plus the moment the game ends once the last note has had time to
// fall from spawn to the target row. The timeline performs no scheduling
// itself; a driver turns it into real delivery.
type Timeline struct {
	Events []Event
	End    time.Duration
}

// BuildTimeline translates parsed notes into spawn events. User-playable
// notes become CreateCircle actions carrying the global pitch bounds for
// lane binning; the rest become CreateBgCircle actions. Events are sorted
// by schedule time, ties kept in input order.
func BuildTimeline(notes []engine.NoteData, rules engine.Rules) Timeline {
	minPitch, maxPitch := pitchBounds(notes)

	events := make([]Event, 0, len(notes))
	var lastEnd float64
	for _, n := range notes {
		if n.End > lastEnd {
			lastEnd = n.End
		}

		var a engine.Action
		if n.UserPlayed {
			a = engine.CreateCircle{Note: n, MinPitch: minPitch, MaxPitch: maxPitch}
		} else {
			a = engine.CreateBgCircle{Note: n}
		}
		events = append(events, Event{
			At:     time.Duration(n.Start * float64(time.Second)),
			Action: a,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At < events[j].At
	})

	return Timeline{
		Events: events,
		End:    time.Duration(lastEnd*float64(time.Second)) + rules.TravelTime(),
	}
}

// pitchBounds returns the min and max pitch across user-playable notes.
func pitchBounds(notes []engine.NoteData) (int, int) {
	first := true
	var min, max int
	for _, n := range notes {
		if !n.UserPlayed {
			continue
		}
		if first || n.Pitch < min {
			min = n.Pitch
		}
		if first || n.Pitch > max {
			max = n.Pitch
		}
		first = false
	}
	return min, max
}

// Cursor walks a timeline in schedule order, handing out the events that
// have come due. The driver owns the clock; the cursor only tracks
// position.
type Cursor struct {
	timeline Timeline
	next     int
}

// NewCursor returns a cursor at the start of the timeline.
func NewCursor(t Timeline) *Cursor {
	return &Cursor{timeline: t}
}

// Due returns the events scheduled at or before elapsed, in order,
// advancing past them.
func (c *Cursor) Due(elapsed time.Duration) []Event {
	start := c.next
	for c.next < len(c.timeline.Events) && c.timeline.Events[c.next].At <= elapsed {
		c.next++
	}
	return c.timeline.Events[start:c.next]
}

// SpawnsDone reports whether every spawn event has been handed out.
func (c *Cursor) SpawnsDone() bool {
	return c.next >= len(c.timeline.Events)
}

// End returns the end-of-game schedule time.
func (c *Cursor) End() time.Duration {
	return c.timeline.End
}
