package correlation

import (
	"sort"
	"time"

	"github.com/macrolens/backend/internal/contracts"
)

// fillToleranceDays is the forward-fill tolerance: an asset value may
// cover a benchmark date up to exactly 3 calendar days later. Older
// samples are dropped for that date, not filled.
const fillToleranceDays = 3

// normalizeSeries sorts ascending by date, drops non-finite values and
// deduplicates by calendar date keeping the last sample.
func normalizeSeries(points []contracts.Observation) []contracts.Observation {
	cleaned := make([]contracts.Observation, 0, len(points))
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		cleaned = append(cleaned, contracts.Observation{
			Date:  dateOnly(p.Date),
			Value: p.Value,
		})
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Date.Before(cleaned[j].Date)
	})

	deduped := cleaned[:0]
	for _, p := range cleaned {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date.Equal(p.Date) {
			deduped[len(deduped)-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	return deduped
}

// align walks the benchmark dates and forward-fills the asset's most
// recent value at or before each date, within the fill tolerance.
// Inputs must already be normalized.
func align(asset, benchmark []contracts.Observation) []contracts.AlignedPoint {
	aligned := make([]contracts.AlignedPoint, 0, len(benchmark))

	ai := 0
	for _, b := range benchmark {
		for ai < len(asset) && !asset[ai].Date.After(b.Date) {
			ai++
		}
		if ai == 0 {
			// No asset value at or before this benchmark date yet.
			continue
		}

		last := asset[ai-1]
		if daysBetween(last.Date, b.Date) > fillToleranceDays {
			continue
		}

		aligned = append(aligned, contracts.AlignedPoint{
			Date:      b.Date,
			Asset:     last.Value,
			Benchmark: b.Value,
		})
	}

	return aligned
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the calendar-day distance from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
