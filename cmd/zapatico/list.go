package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zapatico/internal/config"
	"github.com/vovakirdan/zapatico/internal/core"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulties and chaos levels",
	Long:  `Shows the difficulty tiers and CAMBIA chaos levels with the tuning they resolve to.`,
	Run:   runList,
}

var flagListDefaults bool

func init() {
	listCmd.Flags().BoolVar(&flagListDefaults, "defaults", false, "Print the default tuning YAML, a starting point for --config")
}

func runList(_ *cobra.Command, _ []string) {
	if flagListDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Printf("Warning: %v, showing defaults\n\n", err)
		cfg = config.DefaultGameConfig()
	}
	cambia := config.NewCambiaCurve(cfg)

	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-8s  %s\n", "Name", "Start BPM")
	fmt.Printf("  %-8s  %s\n", "----", "---------")
	for _, d := range core.Difficulties {
		fmt.Printf("  %-8s  %d\n", d, d.BPM())
	}
	fmt.Printf("\n  +%d BPM every %d hits, up to %d BPM\n",
		cfg.Tempo.BPMIncrement, cfg.Tempo.HitsPerStep, cfg.Tempo.MaxBPM)

	fmt.Println()
	fmt.Println("Chaos levels:")
	fmt.Println()
	fmt.Printf("  %-8s  %-12s  %s\n", "Name", "Probability", "Length")
	fmt.Printf("  %-8s  %-12s  %s\n", "----", "-----------", "------")
	for _, c := range core.ChaosLevels {
		p := cambia.Probability(c.ProbabilityMultiplier())
		if p <= 0 {
			fmt.Printf("  %-8s  %-12s  %s\n", c, "never", "-")
			continue
		}
		fmt.Printf("  %-8s  %-12s  %d beats\n", c,
			fmt.Sprintf("%.0f%%/beat", p*100), cambia.DurationBeats(c.DurationMultiplier()))
	}

	fmt.Println()
	fmt.Println("Run 'zapatico play --difficulty <name> --chaos <level>' to play.")
}
