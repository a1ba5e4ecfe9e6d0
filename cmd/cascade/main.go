// cascade is a terminal match-3 puzzle with falling-tile physics.
//
// Usage:
//
//	cascade list              - List available modes
//	cascade play [mode]       - Play a mode (default: match3)
//	cascade sim               - Run headless batch simulations
//	cascade serve             - Start SSH server for remote play
//	cascade scores [mode]     - Show high scores
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.cascade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/tilelab/cascade/internal/games/match3"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Cascade - match-3 tile puzzle in your terminal",
	Long: `Cascade is a terminal match-3 puzzle. Tiles fall with continuous
gravity, matches collapse into bombs, and cascades multiply your score.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  sim      - Run headless batch simulations
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  cascade list
  cascade play match3
  cascade play match3_quarry --difficulty hard
  cascade sim --games 10000 --policy greedy
  cascade serve --ssh :2222
  cascade scores match3`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cascade/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
