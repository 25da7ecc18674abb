package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// biasCmd prints the macro bias for one symbol.
var biasCmd = &cobra.Command{
	Use:   "bias [symbol]",
	Short: "Show the macro bias for one asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runBias,
}

func init() {
	rootCmd.AddCommand(biasCmd)
}

func runBias(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.close()

	symbol := strings.ToUpper(args[0])
	view, err := a.engine.BiasFor(context.Background(), symbol)
	if err != nil {
		return err
	}

	b := view.Bias
	fmt.Printf("%s  score=%+.1f  direction=%s  confidence=%.2f\n", view.Asset.Name, b.Score, b.Direction, b.Confidence)
	fmt.Printf("coverage=%.2f  coherence=%.2f  drivers=%d/%d\n\n", b.Meta.Coverage, b.Meta.Coherence, b.Meta.DriversUsed, b.Meta.DriversTotal)

	fmt.Println(view.Narrative.Headline)
	for _, bullet := range view.Narrative.Bullets {
		fmt.Printf("  - %s\n", bullet)
	}
	fmt.Printf("\n%s\n", view.Narrative.ConfidenceNote)

	if len(view.Correlations) > 0 {
		fmt.Println("\nCorrelations:")
		for window, corr := range view.Correlations {
			if corr.Valid() {
				fmt.Printf("  %-4s %+.2f (n=%d)\n", window, *corr.Value, corr.NObs)
			} else {
				fmt.Printf("  %-4s %s (n=%d)\n", window, corr.Status, corr.NObs)
			}
		}
	}
	return nil
}
