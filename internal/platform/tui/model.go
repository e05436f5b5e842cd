package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/chart"
	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/engine"
	"github.com/vovakirdan/tui-rhythm/internal/songs"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// RunConfig contains the per-run parameters the platform needs.
type RunConfig struct {
	ScreenW int
	ScreenH int
	Seed    int64 // 0 means derive from the current time
}

// Model is the Bubble Tea model that drives one song. It owns the clock
// and folds the engine: every frame applies the clock tick first, then
// the queued input actions, then the spawn events that have come due, so
// the action order is reproducible for a given seed and input timing.
type Model struct {
	song     songs.SongInfo
	rules    engine.Rules
	keymap   *KeyMapper
	timeline chart.Timeline

	state  engine.State
	cursor *chart.Cursor
	ticks  uint64
	queued []engine.Action

	screen  *Screen
	store   *storage.Store
	sounder Sounder
	seed    int64

	maxCombo   int
	scoreSaved bool
	quitting   bool
}

// NewModel creates a model for one song run.
func NewModel(song songs.SongInfo, notes []engine.NoteData, cfg config.RhythmConfig,
	store *storage.Store, sounder Sounder, run RunConfig) Model {
	if run.Seed == 0 {
		run.Seed = time.Now().UnixNano()
	}
	if sounder == nil {
		sounder = NopSounder{}
	}

	rules := cfg.Rules()
	timeline := chart.BuildTimeline(notes, rules)

	return Model{
		song:     song,
		rules:    rules,
		keymap:   NewKeyMapper(cfg.Keys),
		timeline: timeline,
		state:    engine.NewState(rules, run.Seed),
		cursor:   chart.NewCursor(timeline),
		screen:   NewScreen(run.ScreenW, run.ScreenH),
		store:    store,
		sounder:  sounder,
		seed:     run.Seed,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.rules.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Board coordinates are screen-independent; only the buffer resizes.
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues input actions for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, lane := m.keymap.MapKey(msg)

	switch action {
	case KeyQuit:
		m.quitting = true
		return m, tea.Quit

	case KeyRestart:
		if m.state.GameEnd {
			return m.restart(), nil
		}

	case KeyLane:
		if m.state.GameEnd {
			return m, nil
		}
		if laneHeld(m.state, lane) {
			m.queued = append(m.queued, engine.ReleaseKey{Lane: lane})
		} else {
			// The reducer no-ops whichever of the pair does not apply:
			// press acts on aligned plain circles, hold on tailed ones.
			// Press must go first. Hold consumes an aligned tailed circle,
			// and a press arriving after that would find the lane empty
			// and count a miss against a hold that just succeeded.
			m.queued = append(m.queued, engine.PressKey{Lane: lane}, engine.HoldKey{Lane: lane})
		}
	}

	return m, nil
}

// handleTick advances the simulation one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.ticks++
	elapsed := time.Duration(m.ticks) * m.rules.TickInterval()
	prevPlaying := playingTails(m.state)

	// Clock tick, then inputs, then spawns: the frame's total order.
	m.state = engine.Reduce(m.state, engine.Tick{})
	for _, a := range m.queued {
		m.state = engine.Reduce(m.state, a)
	}
	m.queued = nil
	for _, ev := range m.cursor.Due(elapsed) {
		m.state = engine.Reduce(m.state, ev.Action)
	}
	if elapsed >= m.cursor.End() {
		m.state = engine.Reduce(m.state, engine.EndGame{})
	}

	if m.state.ConsecutiveHits > m.maxCombo {
		m.maxCombo = m.state.ConsecutiveHits
	}

	EmitFrameAudio(m.sounder, m.state, prevPlaying)

	// Save score on game end (once)
	if m.state.GameEnd && !m.scoreSaved && m.state.Score > 0 {
		if m.store != nil {
			// Best effort; the run keeps rendering even if the save fails.
			_, _ = m.store.SaveScore(m.song.ID, int(m.state.Score), m.maxCombo)
		}
		m.scoreSaved = true
	}

	return m, tickCmd(m.rules.TickRate)
}

// restart discards the run and starts a fresh fold from the initial
// state, reusing the seed so a restarted run is reproducible.
func (m Model) restart() Model {
	m.state = engine.NewState(m.rules, m.seed)
	m.cursor = chart.NewCursor(m.timeline)
	m.ticks = 0
	m.queued = nil
	m.maxCombo = 0
	m.scoreSaved = false
	return m
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawState(m.screen, m.state, m.song.Title, m.keymap.LaneKeys())
	return RenderScreen(m.screen)
}

// laneHeld reports whether a tail is currently being held in the lane.
func laneHeld(s engine.State, lane int) bool {
	for _, t := range s.Tails {
		if t.Lane == lane && t.IsPlayed {
			return true
		}
	}
	return false
}

// Run starts the Bubble Tea program for one song.
func Run(song songs.SongInfo, notes []engine.NoteData, cfg config.RhythmConfig,
	store *storage.Store, sounder Sounder, run RunConfig) error {
	model := NewModel(song, notes, cfg, store, sounder, run)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
