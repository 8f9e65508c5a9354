package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zapatico/internal/core"
	"github.com/vovakirdan/zapatico/internal/storage"
)

var (
	flagSetDifficulty string
	flagSetChaos      string
	flagSetMetronome  bool
	flagSetVolume     float64
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	Long: `Without flags, prints the stored preferences. With flags, updates them.
Out-of-range volumes are clamped to [0, 1].

Examples:
  zapatico settings
  zapatico settings --difficulty pro
  zapatico settings --chaos off --metronome=false
  zapatico settings --volume 0.4`,
	Args: cobra.NoArgs,
	Run:  runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagSetDifficulty, "difficulty", "", "Difficulty: kid, normal, pro")
	settingsCmd.Flags().StringVar(&flagSetChaos, "chaos", "", "CAMBIA chaos: off, low, normal, high")
	settingsCmd.Flags().BoolVar(&flagSetMetronome, "metronome", core.DefaultMetronomeEnabled, "Show the metronome pulse")
	settingsCmd.Flags().Float64Var(&flagSetVolume, "volume", core.DefaultVolume, "Metronome volume (0.0 - 1.0)")
}

func runSettings(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	settings, err := store.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return
	}

	flags := cmd.Flags()
	changed := false

	if flags.Changed("difficulty") {
		d, ok := core.LookupDifficulty(flagSetDifficulty)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagSetDifficulty)
			return
		}
		settings.Difficulty = d
		changed = true
	}
	if flags.Changed("chaos") {
		c, ok := core.LookupChaosLevel(flagSetChaos)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown chaos level %q\n", flagSetChaos)
			return
		}
		settings.Chaos = c
		changed = true
	}
	if flags.Changed("metronome") {
		settings.MetronomeEnabled = flagSetMetronome
		changed = true
	}
	if flags.Changed("volume") {
		settings.Volume = flagSetVolume
		changed = true
	}

	if changed {
		settings = settings.Normalized()
		if err := store.SaveSettings(settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return
		}
		fmt.Println("Settings saved.")
		fmt.Println()
	}

	fmt.Printf("  %-12s  %s (%d BPM)\n", "Difficulty", settings.Difficulty.Title(), settings.Difficulty.BPM())
	fmt.Printf("  %-12s  %s\n", "Chaos", settings.Chaos)
	fmt.Printf("  %-12s  %t\n", "Metronome", settings.MetronomeEnabled)
	fmt.Printf("  %-12s  %.0f%%\n", "Volume", settings.Volume*100)
}
