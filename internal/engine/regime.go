package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/macrolens/backend/internal/contracts"
)

// USD regime detection thresholds: the benchmark return over the
// lookback must clear the band before the regime reads directional.
const (
	regimeLookbackDays = 50
	regimeBand         = 0.02
)

// USDRegime classifies the dollar from the benchmark index trend.
// Mixto is the answer whenever the data cannot support a directional
// call.
func (e *Engine) USDRegime(ctx context.Context) (contracts.USDRegime, error) {
	benchmark := e.benchmarkSymbol()
	if benchmark == "" {
		return contracts.RegimeMixto, fmt.Errorf("universe has no benchmark symbol")
	}

	from := time.Now().UTC().AddDate(0, 0, -regimeLookbackDays-30)
	series, err := e.observations.GetSeriesSince(ctx, benchmark, from)
	if err != nil {
		return contracts.RegimeMixto, fmt.Errorf("load benchmark series %s: %w", benchmark, err)
	}
	if series == nil || len(series.Points) < 2 {
		return contracts.RegimeMixto, nil
	}

	points := series.Points
	last := points[len(points)-1]
	cutoff := time.Now().UTC().AddDate(0, 0, -regimeLookbackDays)

	var base *contracts.Observation
	for i := len(points) - 1; i >= 0; i-- {
		if !points[i].Date.After(cutoff) {
			base = &points[i]
			break
		}
	}
	if base == nil {
		base = &points[0]
	}
	if base.Value == 0 {
		return contracts.RegimeMixto, nil
	}

	change := (last.Value - base.Value) / base.Value
	switch {
	case change > regimeBand:
		return contracts.RegimeFuerte, nil
	case change < -regimeBand:
		return contracts.RegimeDebil, nil
	default:
		return contracts.RegimeMixto, nil
	}
}

// benchmarkSymbol returns the correlation benchmark shared by the
// universe. The first configured asset decides.
func (e *Engine) benchmarkSymbol() string {
	for _, asset := range e.universe.Assets {
		if asset.Benchmark != "" {
			return asset.Benchmark
		}
	}
	return ""
}
