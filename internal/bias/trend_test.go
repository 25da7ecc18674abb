package bias

import "testing"

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name          string
		prev, curr    float64
		lowerIsBetter bool
		want          string
	}{
		{"CPI YoY falling improves", 3.0, 2.5, true, TrendMejora},
		{"CPI YoY rising worsens", 3.0, 3.5, true, TrendEmpeora},
		{"sub-1% move is stable", 3.0, 3.02, true, TrendEstable},
		{"GDP growth rising improves", 1.5, 2.0, false, TrendMejora},
		{"GDP growth falling worsens", 2.0, 1.4, false, TrendEmpeora},
		{"flat reading is stable", 2.0, 2.0, false, TrendEstable},
		{"zero base uses absolute band", 0.0, 0.005, false, TrendEstable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyTrend(tc.prev, tc.curr, tc.lowerIsBetter)
			if got != tc.want {
				t.Errorf("ClassifyTrend(%.2f, %.2f, %v) = %s, want %s",
					tc.prev, tc.curr, tc.lowerIsBetter, got, tc.want)
			}
		})
	}
}
