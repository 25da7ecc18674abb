package radar

import (
	"math"
	"sort"
	"time"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
)

// Correlation trend labels for the radar output.
const (
	TrendStrengthening = "strengthening"
	TrendStable        = "stable"
	TrendWeakening     = "weakening"
)

const (
	topN = 5

	// trendBand is the |corr3m| vs |corr12m| gap below which the trend
	// counts as stable.
	trendBand = 0.05

	// trendBonus rewards a strengthening short-term correlation and
	// penalizes a weakening one.
	trendBonus = 0.10

	// eventPenalty discounts pairs with a high-impact event on one of
	// their currencies inside the next 24 hours.
	eventPenalty = 0.15
	eventHorizon = 24 * time.Hour
)

// Candidate bundles the per-asset state the ranker scores.
type Candidate struct {
	Asset  contracts.AssetMeta
	Bias   contracts.MacroBias
	Row    contracts.TacticalRow
	Corr12 *contracts.CorrelationResult
	Corr3  *contracts.CorrelationResult
}

// Ranker builds the opportunities radar from scored candidates.
type Ranker struct {
	logger *logger.Logger
}

// NewRanker creates an opportunities ranker.
func NewRanker(log *logger.Logger) *Ranker {
	return &Ranker{logger: log}
}

// Rank scores every candidate and returns the top entries, highest
// first. Ties keep insertion order so the ranking is deterministic
// across runs with identical inputs.
func (r *Ranker) Rank(candidates []Candidate, events []contracts.CalendarEvent, now time.Time) []contracts.Opportunity {
	opportunities := make([]contracts.Opportunity, 0, len(candidates))

	for _, c := range candidates {
		trend, trendDelta := corrTrend(c.Corr3, c.Corr12)
		penalized := hasImminentHighImpactEvent(c.Asset, events, now)

		score := c.Bias.Confidence + trendDelta + math.Abs(c.Bias.Score)/100
		motivo := c.Row.Motivo
		if penalized {
			score -= eventPenalty
			motivo += "; evento de alto impacto en las próximas 24h"
		}

		opportunities = append(opportunities, contracts.Opportunity{
			Pair:         c.Asset.Name,
			Score:        score,
			Action:       c.Row.Action,
			CorrTrend:    trend,
			EventPenalty: penalized,
			Motivo:       motivo,
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].Score > opportunities[j].Score
	})

	if len(opportunities) > topN {
		opportunities = opportunities[:topN]
	}
	return opportunities
}

// corrTrend compares the short and long window correlation magnitudes.
// Missing values on either side read as a stable trend.
func corrTrend(corr3, corr12 *contracts.CorrelationResult) (string, float64) {
	if corr3 == nil || !corr3.Valid() || corr12 == nil || !corr12.Valid() {
		return TrendStable, 0
	}

	diff := corr3.Abs() - corr12.Abs()
	switch {
	case diff > trendBand:
		return TrendStrengthening, trendBonus
	case diff < -trendBand:
		return TrendWeakening, -trendBonus
	default:
		return TrendStable, 0
	}
}

// hasImminentHighImpactEvent reports whether a high-impact event on
// one of the pair's currencies falls inside the event horizon.
func hasImminentHighImpactEvent(asset contracts.AssetMeta, events []contracts.CalendarEvent, now time.Time) bool {
	currencies := asset.Currencies()
	horizon := now.Add(eventHorizon)

	for _, ev := range events {
		if ev.Impact != contracts.ImpactHigh {
			continue
		}
		if ev.ScheduledAt.Before(now) || ev.ScheduledAt.After(horizon) {
			continue
		}
		for _, ccy := range currencies {
			if ev.Currency == ccy {
				return true
			}
		}
	}
	return false
}
