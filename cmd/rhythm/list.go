package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/songs"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available songs",
	Long:  `Shows the embedded demo song plus every .notes chart in the songs directory.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	library := songs.NewLibrary(flagSongsDir)

	list, err := library.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning songs: %v\n", err)
		os.Exit(1)
	}

	if len(list) == 0 {
		fmt.Println("No songs available.")
		return
	}

	fmt.Println("Available songs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range list {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-24s  %6s  %8s\n", maxIDLen, "ID", "Title", "Notes", "Length")
	fmt.Printf("  %-*s  %-24s  %6s  %8s\n", maxIDLen, "--", "-----", "-----", "------")

	for _, s := range list {
		fmt.Printf("  %-*s  %-24s  %6d  %8s\n",
			maxIDLen, s.ID, s.Title, s.Playable, s.Length.Round(time.Second))
	}

	fmt.Println()
	fmt.Println("Run 'rhythm play <id>' to play a song.")
}
