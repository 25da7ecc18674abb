package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macrolens/backend/internal/contracts"
)

// checkCmd runs the invariant checks once and prints the results.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the quality invariant checks",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.close()

	diags, err := a.engine.Diagnostics(context.Background())
	if err != nil {
		return err
	}

	failed := false
	for _, symbol := range a.universe.Symbols() {
		results, ok := diags[symbol]
		if !ok {
			continue
		}
		fmt.Printf("%s:\n", symbol)
		for _, r := range results {
			fmt.Printf("  [%s] %-18s %s\n", r.Level, r.Name, r.Message)
			if r.Level == contracts.LevelFail {
				failed = true
			}
		}
	}

	if failed {
		return fmt.Errorf("one or more invariant checks failed")
	}
	return nil
}
