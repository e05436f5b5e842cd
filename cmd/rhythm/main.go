// rhythm is a TUI rhythm game: notes fall down four columns and are
// played by pressing the column keys when they reach the target row.
//
// Usage:
//
//	rhythm list              - List available songs
//	rhythm play [song]       - Play a song (embedded demo by default)
//	rhythm serve             - Start SSH server for remote play
//	rhythm scores [song]     - Show high scores
//
// Global flags:
//
//	--fps <rate>    - Override simulation tick rate
//	--seed <value>  - Set RNG seed for reproducible filler notes
//	--db <path>     - Set database path (default: ~/.rhythm/scores.db)
//	--songs <dir>   - Directory scanned for .notes charts
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagSongsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rhythm",
	Short: "TUI Rhythm - Play falling notes in your terminal",
	Long: `TUI Rhythm is a terminal rhythm game. Notes fall down four columns
and are played by pressing the column keys as they cross the target row.
Long notes are held and released at the right moment.

Available commands:
  list     - Show all available songs
  play     - Play a song
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  rhythm list
  rhythm play demo
  rhythm play moon_river --songs ./charts
  rhythm serve --ssh :2222
  rhythm scores demo`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rhythm/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagSongsDir, "songs", "", "Directory with .notes song charts")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
