package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macrolens/backend/internal/contracts"
)

// correlationsCmd prints the latest stored correlations per asset.
var correlationsCmd = &cobra.Command{
	Use:   "correlations",
	Short: "Show the latest stored correlations",
	RunE:  runCorrelations,
}

func init() {
	rootCmd.AddCommand(correlationsCmd)
}

func runCorrelations(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	for _, asset := range a.universe.Assets {
		results, err := a.correlations.GetLatestBySymbol(ctx, asset.Symbol, asset.Benchmark)
		if err != nil {
			return fmt.Errorf("load correlations for %s: %w", asset.Symbol, err)
		}

		fmt.Printf("%s vs %s:\n", asset.Name, asset.Benchmark)
		if len(results) == 0 {
			fmt.Println("  (no rows; run `scheduler run correlation_refresh`)")
			continue
		}
		for _, window := range contracts.AllWindows {
			r, ok := results[window]
			if !ok {
				continue
			}
			if r.Valid() {
				fmt.Printf("  %-4s %+.2f  n=%-4d asof=%s\n", window, *r.Value, r.NObs, r.AsOf.Format("2006-01-02"))
			} else {
				fmt.Printf("  %-4s %-18s n=%-4d asof=%s\n", window, r.Status, r.NObs, r.AsOf.Format("2006-01-02"))
			}
		}
	}
	return nil
}
