package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// radarCmd prints the ranked opportunities and the tactical table.
var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Show the opportunities radar and tactical table",
	RunE:  runRadar,
}

func init() {
	rootCmd.AddCommand(radarCmd)
}

func runRadar(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()

	rows, err := a.engine.TacticalRows(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Tactical table:")
	for _, row := range rows {
		corr := "   -  "
		if row.Corr12M != nil {
			corr = fmt.Sprintf("%+.2f", *row.Corr12M)
		}
		fmt.Printf("  %-8s %-15s %-6s corr12m=%s  %s\n", row.Pair, row.Action, row.Confidence, corr, row.Motivo)
	}

	opportunities, err := a.engine.Radar(ctx)
	if err != nil {
		return err
	}

	fmt.Println("\nOpportunities radar:")
	for i, op := range opportunities {
		penalty := ""
		if op.EventPenalty {
			penalty = " [evento 24h]"
		}
		fmt.Printf("  %d. %-8s score=%.2f %-15s trend=%s%s\n", i+1, op.Pair, op.Score, op.Action, op.CorrTrend, penalty)
	}
	return nil
}
