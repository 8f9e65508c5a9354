package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/zapatico/internal/config"
	"github.com/vovakirdan/zapatico/internal/core"
	"github.com/vovakirdan/zapatico/internal/platform/tui"
	"github.com/vovakirdan/zapatico/internal/storage"
)

var (
	flagDifficulty string
	flagChaos      string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Zapatico",
	Long: `Start an interactive session on the home menu.

Controls:
  Left/A/H     - Left foot
  Right/D/L    - Right foot
  Enter/Space  - Start / select
  P            - Pause / resume
  R            - Restart (after game over)
  Esc/B        - Back to home
  Q/Ctrl+C     - Quit

Difficulty options:
  kid    - 70 BPM
  normal - 90 BPM
  pro    - 120 BPM

Chaos options (CAMBIA frequency and length):
  off, low, normal, high

--difficulty and --chaos are saved as your new preferences.

Examples:
  zapatico play
  zapatico play --difficulty kid
  zapatico play --chaos off
  zapatico play --config ./my-tuning.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: kid, normal, pro")
	playCmd.Flags().StringVar(&flagChaos, "chaos", "", "CAMBIA chaos: off, low, normal, high")
}

func runPlay(cmd *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogFile()
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	settings, err := playSettings(cmd, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	if settings != nil {
		logger.Info("session started", "difficulty", settings.Difficulty, "chaos", settings.Chaos, "seed", flagSeed)
	} else {
		logger.Info("session started", "seed", flagSeed)
	}

	runErr := tui.Run(tui.SessionOptions{
		Store:    store,
		Game:     gameCfg,
		Settings: settings,
		Runtime:  runtime,
		Logger:   logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("session failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		// os.Exit skips deferred calls
		closeLog()
		os.Exit(1)
	}
	logger.Info("session ended")
}

// playSettings applies --difficulty and --chaos on top of the stored
// preferences and saves the result. It returns nil when neither flag is set.
func playSettings(cmd *cobra.Command, store *storage.Store) (*core.Settings, error) {
	if !cmd.Flags().Changed("difficulty") && !cmd.Flags().Changed("chaos") {
		return nil, nil
	}

	settings := core.DefaultSettings()
	if store != nil {
		if loaded, err := store.LoadSettings(); err == nil {
			settings = loaded
		}
	}

	if cmd.Flags().Changed("difficulty") {
		d, ok := core.LookupDifficulty(flagDifficulty)
		if !ok {
			return nil, fmt.Errorf("unknown difficulty %q (want kid, normal or pro)", flagDifficulty)
		}
		settings.Difficulty = d
	}
	if cmd.Flags().Changed("chaos") {
		c, ok := core.LookupChaosLevel(flagChaos)
		if !ok {
			return nil, fmt.Errorf("unknown chaos level %q (want off, low, normal or high)", flagChaos)
		}
		settings.Chaos = c
	}

	if store != nil {
		if err := store.SaveSettings(settings); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save settings: %v\n", err)
		}
	}
	return &settings, nil
}
