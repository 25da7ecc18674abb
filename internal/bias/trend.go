package bias

import "math"

// Trend labels for indicator direction, in dashboard wording.
const (
	TrendMejora  = "Mejora"
	TrendEmpeora = "Empeora"
	TrendEstable = "Estable"
)

// stableBand is the relative change below which an indicator move is
// considered noise.
const stableBand = 0.01

// ClassifyTrend labels the move of an indicator between two readings.
// lowerIsBetter flips the reading for indicators whose improvement
// means decreasing, such as CPI YoY or unemployment.
func ClassifyTrend(prev, curr float64, lowerIsBetter bool) string {
	change := curr - prev

	base := math.Abs(prev)
	if base == 0 {
		base = 1
	}
	if math.Abs(change)/base < stableBand {
		return TrendEstable
	}

	improving := change > 0
	if lowerIsBetter {
		improving = !improving
	}

	if improving {
		return TrendMejora
	}
	return TrendEmpeora
}
