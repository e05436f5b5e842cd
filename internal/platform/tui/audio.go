package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

// Sounder is the audio capability the platform hands frame events to:
// start/stop a sustained instrument note, or play a one-shot. Sample
// synthesis lives entirely behind this interface.
type Sounder interface {
	StartNote(instrument string, pitch, velocity int)
	StopNote(instrument string, pitch int)
	PlayNote(instrument string, pitch, velocity int)
}

// NopSounder discards all audio events. Used when no audio backend is
// wired up, which keeps the game fully playable.
type NopSounder struct{}

func (NopSounder) StartNote(string, int, int) {}
func (NopSounder) StopNote(string, int)       {}
func (NopSounder) PlayNote(string, int, int)  {}

// LogSounder writes audio events to a logger. Useful for debugging the
// frame event stream without an audio backend.
type LogSounder struct {
	Logger *log.Logger
}

func (l LogSounder) StartNote(instrument string, pitch, velocity int) {
	l.Logger.Debug("note start", "instrument", instrument, "pitch", pitch, "velocity", velocity)
}

func (l LogSounder) StopNote(instrument string, pitch int) {
	l.Logger.Debug("note stop", "instrument", instrument, "pitch", pitch)
}

func (l LogSounder) PlayNote(instrument string, pitch, velocity int) {
	l.Logger.Debug("note play", "instrument", instrument, "pitch", pitch, "velocity", velocity)
}

// EmitFrameAudio translates one settled frame into audio calls:
// start for tails whose hold began this frame, stop for tails that just
// stopped playing and for completed tails, one-shots for resolved plain
// circles and for ambient circles sitting exactly on the target row.
// prevPlaying holds the tail ids that were sounding before this frame.
func EmitFrameAudio(snd Sounder, s engine.State, prevPlaying map[string]engine.Tail) {
	for _, t := range s.Tails {
		if t.IsStartNote {
			snd.StartNote(t.Note.Instrument, t.Note.Pitch, t.Note.Velocity)
		}
		if !t.IsPlayed {
			if _, was := prevPlaying[t.ID]; was {
				snd.StopNote(t.Note.Instrument, t.Note.Pitch)
			}
		}
	}

	for _, t := range s.Frame.Finished {
		snd.StopNote(t.Note.Instrument, t.Note.Pitch)
	}

	for _, c := range s.Frame.Played {
		if !c.HasTail {
			snd.PlayNote(c.Note.Instrument, c.Note.Pitch, c.Note.Velocity)
		}
	}

	for _, bg := range s.BgCircles {
		if bg.CY == s.Rules.TargetCY {
			snd.PlayNote(bg.Note.Instrument, bg.Note.Pitch, bg.Note.Velocity)
		}
	}
}

// playingTails collects the tails currently sounding, keyed by id.
func playingTails(s engine.State) map[string]engine.Tail {
	playing := make(map[string]engine.Tail)
	for _, t := range s.Tails {
		if t.IsPlayed {
			playing[t.ID] = t
		}
	}
	return playing
}
