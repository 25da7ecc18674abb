package weights

import (
	"errors"
	"fmt"
	"math"

	"github.com/macrolens/backend/internal/contracts"
)

// weightSumTolerance allows for binary float representation error in
// hand-written YAML weights.
const weightSumTolerance = 1e-5

// ValidationError aborts startup; a malformed table is a deployment
// error, not a user error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateTable checks all required constraints of a weight table.
func ValidateTable(table *Table) error {
	if table.Version == "" {
		return ValidationError{"version", "required"}
	}
	if len(table.Classes) == 0 {
		return ValidationError{"classes", "must not be empty"}
	}

	for class, cw := range table.Classes {
		// Every factor key must be present exactly once.
		if len(cw) != len(contracts.AllFactors) {
			return ValidationError{
				Field:   fmt.Sprintf("classes.%s", class),
				Message: fmt.Sprintf("must define all %d factors, got %d", len(contracts.AllFactors), len(cw)),
			}
		}
		for _, key := range contracts.AllFactors {
			fw, ok := cw[key]
			if !ok {
				return ValidationError{
					Field:   fmt.Sprintf("classes.%s.%s", class, key),
					Message: "missing factor",
				}
			}
			if fw.Weight < 0 || fw.Weight > 1 {
				return ValidationError{
					Field:   fmt.Sprintf("classes.%s.%s.weight", class, key),
					Message: "must be in range [0, 1]",
				}
			}
			if fw.Sign != 1 && fw.Sign != -1 {
				return ValidationError{
					Field:   fmt.Sprintf("classes.%s.%s.sign", class, key),
					Message: "must be +1 or -1",
				}
			}
			if fw.Description == "" {
				return ValidationError{
					Field:   fmt.Sprintf("classes.%s.%s.description", class, key),
					Message: "required",
				}
			}
		}

		if err := validateWeightsSum(cw); err != nil {
			return ValidationError{
				Field:   fmt.Sprintf("classes.%s", class),
				Message: err.Error(),
			}
		}
	}

	return nil
}

// ValidateUniverse checks the asset universe against the weight table.
func ValidateUniverse(universe *Universe, table *Table) error {
	if universe.Version == "" {
		return ValidationError{"version", "required"}
	}
	if len(universe.Assets) == 0 {
		return ValidationError{"assets", "must not be empty"}
	}

	seen := make(map[string]bool, len(universe.Assets))
	for i, asset := range universe.Assets {
		field := fmt.Sprintf("assets[%d]", i)

		if asset.Symbol == "" {
			return ValidationError{field + ".symbol", "required"}
		}
		if seen[asset.Symbol] {
			return ValidationError{field + ".symbol", fmt.Sprintf("duplicate symbol %s", asset.Symbol)}
		}
		seen[asset.Symbol] = true

		if asset.Benchmark == "" {
			return ValidationError{field + ".benchmark", "required"}
		}
		if _, ok := table.Classes[asset.Class]; !ok {
			return ValidationError{
				Field:   field + ".class",
				Message: fmt.Sprintf("class %q has no weight table", asset.Class),
			}
		}
	}

	return nil
}

func validateWeightsSum(cw ClassWeights) error {
	if len(cw) == 0 {
		return errors.New("must not be empty")
	}
	sum := 0.0
	for _, fw := range cw {
		sum += fw.Weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}
