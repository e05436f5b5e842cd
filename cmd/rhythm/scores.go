package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
	"github.com/vovakirdan/tui-rhythm/internal/songs"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [song]",
	Short: "Show high scores",
	Long: `Display high scores. With a song argument the top 10 scores for that
song are printed; without one an interactive scoreboard opens where songs
can be cycled with tab.

Examples:
  rhythm scores
  rhythm scores demo`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	library := songs.NewLibrary(flagSongsDir)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		runScoreboardUI(store, library)
		return
	}

	songID := args[0]
	if !library.Exists(songID) {
		fmt.Fprintf(os.Stderr, "Error: unknown song %q\n", songID)
		fmt.Fprintln(os.Stderr, "Run 'rhythm list' to see available songs.")
		os.Exit(1)
	}

	scores, err := store.TopScores(songID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", songID)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rhythm play %s' to set the first high score!\n", songID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-7s  %s\n", "Rank", "Score", "Combo", "Date")
	fmt.Printf("  %-4s  %-10s  %-7s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  x%-6d  %s\n", i+1, entry.Score, entry.MaxCombo, dateStr)
	}

	fmt.Println()
	if highScore, hsErr := store.HighScore(songID); hsErr == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
	if bestCombo, bcErr := store.BestCombo(songID); bcErr == nil {
		fmt.Printf("Best combo: x%d\n", bestCombo)
	}
}

// runScoreboardUI opens the interactive scoreboard for all songs.
func runScoreboardUI(store *storage.Store, library *songs.Library) {
	list, err := library.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning songs: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunScoreboard(store, list, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
