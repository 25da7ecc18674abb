package correlation

import (
	"math"
	"time"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
)

// maxStaleDays rejects windows whose most recent aligned date is too
// far in the past: a quiet upstream source must not keep producing
// confident correlations.
const maxStaleDays = 5

// Calculator computes rolling Pearson correlation between an asset
// series and its benchmark. Pure with respect to its inputs; fetching
// and persistence live at the job boundary.
type Calculator struct {
	logger *logger.Logger
}

// NewCalculator creates a new correlation calculator.
func NewCalculator(log *logger.Logger) *Calculator {
	return &Calculator{logger: log}
}

// Calculate aligns the two series and computes the correlation for one
// window. Missing or degraded data is reported through the result
// status, never through an error: a null value with its n_obs is a
// normal outcome.
func (c *Calculator) Calculate(symbol, benchmark string, asset, bench []contracts.Observation, window contracts.Window, asOf time.Time) contracts.CorrelationResult {
	result := contracts.CorrelationResult{
		Symbol:    symbol,
		Benchmark: benchmark,
		Window:    window,
		AsOf:      dateOnly(asOf),
	}

	aligned := align(normalizeSeries(asset), normalizeSeries(bench))
	if len(aligned) == 0 {
		result.Status = contracts.StatusInsufficientData
		return result
	}

	last := aligned[len(aligned)-1].Date
	asOfDay := dateOnly(asOf)

	// Clock-skew guard: an aligned date past asof means upstream
	// bookkeeping is broken; the window is abandoned.
	if last.After(asOfDay) {
		result.Status = contracts.StatusStale
		result.LastDate = &last
		return result
	}

	// Stale-source guard.
	if daysBetween(last, asOfDay) > maxStaleDays {
		result.Status = contracts.StatusStale
		result.LastDate = &last
		return result
	}

	size, minObs := window.Size()
	if len(aligned) > size {
		aligned = aligned[len(aligned)-size:]
	}
	result.NObs = len(aligned)

	if result.NObs < minObs {
		// Never silently upgraded to zero correlation.
		result.Status = contracts.StatusInsufficientData
		c.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"window": string(window),
			"n_obs":  result.NObs,
			"min":    minObs,
		}).Debug("Correlation window below minimum observations")
		return result
	}

	value := pearson(aligned)
	result.Value = &value
	result.Status = contracts.StatusOK

	return result
}

// CalculateAll computes every configured window for one pair.
func (c *Calculator) CalculateAll(symbol, benchmark string, asset, bench []contracts.Observation, asOf time.Time) []contracts.CorrelationResult {
	results := make([]contracts.CorrelationResult, 0, len(contracts.AllWindows))
	for _, window := range contracts.AllWindows {
		results = append(results, c.Calculate(symbol, benchmark, asset, bench, window, asOf))
	}
	return results
}

// pearson computes the Pearson correlation coefficient over aligned
// samples. A zero-variance series yields 0.
func pearson(points []contracts.AlignedPoint) float64 {
	n := float64(len(points))
	if n == 0 {
		return 0
	}

	var meanA, meanB float64
	for _, p := range points {
		meanA += p.Asset
		meanB += p.Benchmark
	}
	meanA /= n
	meanB /= n

	var num, varA, varB float64
	for _, p := range points {
		da := p.Asset - meanA
		db := p.Benchmark - meanB
		num += da * db
		varA += da * da
		varB += db * db
	}

	den := math.Sqrt(varA * varB)
	if den == 0 {
		return 0
	}
	return num / den
}
