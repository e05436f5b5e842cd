package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
	"github.com/vovakirdan/tui-rhythm/internal/songs"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	flagConfig   string
	flagLogNotes bool
)

var playCmd = &cobra.Command{
	Use:   "play [song]",
	Short: "Play a song",
	Long: `Start playing the specified song. Without an argument the embedded
demo song is used.

Controls:
  H J K L    - Column keys (press for short notes, toggle for long notes)
  R          - Restart (after the song ends)
  Q/Ctrl+C   - Quit

Examples:
  rhythm play
  rhythm play demo
  rhythm play moon_river --songs ./charts
  rhythm play demo --config ./my-rhythm.yaml
  rhythm play demo --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rhythm config YAML")
	playCmd.Flags().BoolVar(&flagLogNotes, "log-notes", false, "Log note on/off events to stderr")
}

func runPlay(cmd *cobra.Command, args []string) {
	songID := songs.DemoID
	if len(args) > 0 {
		songID = args[0]
	}

	library := songs.NewLibrary(flagSongsDir)
	song, notes, err := library.Load(songID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot load song %q: %v\n", songID, err)
		fmt.Fprintln(os.Stderr, "Run 'rhythm list' to see available songs.")
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	run := tui.RunConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var sounder tui.Sounder = tui.NopSounder{}
	if flagLogNotes {
		sounder = tui.LogSounder{Logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "notes",
		})}
	}

	runErr := tui.Run(song, notes, cfg, store, sounder, run)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
