package bias

import (
	"math"
	"time"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/internal/weights"
	"github.com/macrolens/backend/pkg/logger"
)

// directionThreshold is the |score| above which a bias stops being
// neutral, on the [-100, 100] scale.
const directionThreshold = 15.0

// Scorer combines weighted macro factors into a directional bias for
// one asset. Pure function of its snapshot inputs.
type Scorer struct {
	table  *weights.Table
	logger *logger.Logger
}

// NewScorer creates a new bias scorer.
func NewScorer(table *weights.Table, log *logger.Logger) *Scorer {
	return &Scorer{
		table:  table,
		logger: log,
	}
}

// Score computes the macro bias for one asset. Missing sub-scores
// reduce coverage; an entirely empty snapshot yields a neutral,
// zero-confidence bias so downstream consumers always receive a
// well-formed object.
func (s *Scorer) Score(asset contracts.AssetMeta, inputs *contracts.BiasInputs, asOf time.Time) contracts.MacroBias {
	result := contracts.MacroBias{
		Symbol:    asset.Symbol,
		Direction: contracts.DirectionNeutral,
		Drivers:   []contracts.Driver{},
		Meta: contracts.BiasMeta{
			DriversTotal: len(contracts.AllFactors),
		},
		AsOf: asOf,
	}

	cw, ok := s.table.ForClass(asset.Class)
	if !ok {
		// Universe validation rejects unknown classes at startup, so
		// this only happens with a mismatched table/universe pair.
		s.logger.WithFields(map[string]interface{}{
			"symbol": asset.Symbol,
			"class":  string(asset.Class),
		}).Warn("No weight table for asset class")
		return result
	}

	if inputs == nil || inputs.IsEmpty() {
		return result
	}

	var sum, sumAbs float64
	for _, key := range contracts.AllFactors {
		value := inputs.Get(key)
		if value == nil {
			continue
		}

		fw := cw[key]
		contribution := *value * fw.Weight * fw.Sign
		sum += contribution
		sumAbs += math.Abs(contribution)

		result.Drivers = append(result.Drivers, contracts.Driver{
			Key:          key,
			Weight:       fw.Weight,
			Sign:         fw.Sign,
			Value:        *value,
			Contribution: contribution,
			Description:  fw.Description,
		})
	}

	used := len(result.Drivers)
	result.Meta.DriversUsed = used
	result.Meta.Coverage = float64(used) / float64(result.Meta.DriversTotal)
	result.Meta.Coherence = coherence(sum, sumAbs)

	result.Score = clamp(sum*100, -100, 100)
	result.Confidence = confidence(result.Meta.Coverage, result.Meta.Coherence)

	switch {
	case result.Score > directionThreshold:
		result.Direction = contracts.DirectionLong
	case result.Score < -directionThreshold:
		result.Direction = contracts.DirectionShort
	default:
		result.Direction = contracts.DirectionNeutral
	}

	return result
}

// coherence measures directional agreement among the contributing
// drivers: 1.0 when every contribution points the same way, 0 when
// they fully cancel.
func coherence(sum, sumAbs float64) float64 {
	if sumAbs == 0 {
		return 0
	}
	return math.Abs(sum) / sumAbs
}

// confidence combines coverage and coherence. Monotone non-decreasing
// in both; the coverage term dominates so that losing a factor lowers
// confidence even when the survivors agree more.
func confidence(coverage, coherence float64) float64 {
	return coverage * (0.6 + 0.4*coherence)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
