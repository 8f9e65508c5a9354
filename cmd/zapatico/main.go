// zapatico is a terminal rhythm game: tap the foot shown on every beat,
// and swap feet when CAMBIA appears.
//
// Usage:
//
//	zapatico play                 - Play in the terminal
//	zapatico scores [difficulty]  - Show top scores
//	zapatico settings             - Show or change preferences
//	zapatico list                 - List difficulties and chaos levels
//	zapatico serve                - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.zapatico/scores.db)
//	--config <path>   - Custom tuning YAML
//	--log-file <path> - Log destination for interactive commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zapatico",
	Short: "Zapatico - a left/right rhythm game for your terminal",
	Long: `Zapatico is a rhythm game played with two keys. On every beat a foot
is shown; tap it before the next beat. Each hit scores 10 points and every
6 hits speed the tempo up. When CAMBIA flashes, the feet swap for a few beats.
Three misses end the game.

Available commands:
  play      - Start playing
  scores    - View high scores
  settings  - Show or change preferences
  list      - Show difficulties and chaos levels
  serve     - Start SSH server for remote play

Examples:
  zapatico play
  zapatico play --difficulty pro --chaos high
  zapatico scores kid
  zapatico settings --metronome=false
  zapatico serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.zapatico/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.zapatico/zapatico.log", "Log file for interactive commands")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}
