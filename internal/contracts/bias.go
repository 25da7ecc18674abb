package contracts

import "time"

// FactorKey identifies one macro factor sub-score.
type FactorKey string

const (
	FactorRiskRegime        FactorKey = "risk_regime"
	FactorUSDBias           FactorKey = "usd_bias"
	FactorInflationMomentum FactorKey = "inflation_momentum"
	FactorGrowthMomentum    FactorKey = "growth_momentum"
	FactorExternalBalance   FactorKey = "external_balance"
	FactorRatesContext      FactorKey = "rates_context"
)

// AllFactors is the fixed, ordered factor set. Order matters for
// deterministic driver output.
var AllFactors = []FactorKey{
	FactorRiskRegime,
	FactorUSDBias,
	FactorInflationMomentum,
	FactorGrowthMomentum,
	FactorExternalBalance,
	FactorRatesContext,
}

// BiasInputs is a snapshot of macro factor sub-scores for one asset.
// Each sub-score is in [-1, 1]; nil means the factor is unavailable
// and reduces coverage instead of failing the computation.
type BiasInputs struct {
	RiskRegime        *float64 `json:"risk_regime"`
	USDBias           *float64 `json:"usd_bias"`
	InflationMomentum *float64 `json:"inflation_momentum"`
	GrowthMomentum    *float64 `json:"growth_momentum"`
	ExternalBalance   *float64 `json:"external_balance"`
	RatesContext      *float64 `json:"rates_context"`
}

// Get returns the sub-score for a factor key.
func (in *BiasInputs) Get(key FactorKey) *float64 {
	switch key {
	case FactorRiskRegime:
		return in.RiskRegime
	case FactorUSDBias:
		return in.USDBias
	case FactorInflationMomentum:
		return in.InflationMomentum
	case FactorGrowthMomentum:
		return in.GrowthMomentum
	case FactorExternalBalance:
		return in.ExternalBalance
	case FactorRatesContext:
		return in.RatesContext
	default:
		return nil
	}
}

// IsEmpty reports whether every sub-score is missing.
func (in *BiasInputs) IsEmpty() bool {
	for _, key := range AllFactors {
		if in.Get(key) != nil {
			return false
		}
	}
	return true
}

// Direction is the sign of a macro bias.
type Direction string

const (
	DirectionLong    Direction = "long"
	DirectionShort   Direction = "short"
	DirectionNeutral Direction = "neutral"
)

// Driver records how one factor contributed to a bias score.
type Driver struct {
	Key          FactorKey `json:"key"`
	Weight       float64   `json:"weight"`
	Sign         float64   `json:"sign"`
	Value        float64   `json:"value"`
	Contribution float64   `json:"contribution"`
	Description  string    `json:"description"`
}

// BiasMeta carries the degradation metadata of a bias computation.
type BiasMeta struct {
	Coverage     float64 `json:"coverage"`
	Coherence    float64 `json:"coherence"`
	DriversUsed  int     `json:"drivers_used"`
	DriversTotal int     `json:"drivers_total"`
}

// MacroBias is the scorer output for one asset. Immutable once
// produced; downstream consumers treat it as a read-only value.
type MacroBias struct {
	Symbol     string    `json:"symbol"`
	Score      float64   `json:"score"` // [-100, 100]
	Direction  Direction `json:"direction"`
	Confidence float64   `json:"confidence"` // [0, 1]
	Drivers    []Driver  `json:"drivers"`
	Meta       BiasMeta  `json:"meta"`
	AsOf       time.Time `json:"asof"`
}

// ConfidenceLevel is the coarse Alta/Media/Baja bucket used by the
// tactical builder and narrative confidence note.
type ConfidenceLevel string

const (
	ConfidenceAlta  ConfidenceLevel = "Alta"
	ConfidenceMedia ConfidenceLevel = "Media"
	ConfidenceBaja  ConfidenceLevel = "Baja"
)

// ConfidenceBucket maps a numeric confidence to its bucket.
func ConfidenceBucket(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 0.65:
		return ConfidenceAlta
	case confidence >= 0.40:
		return ConfidenceMedia
	default:
		return ConfidenceBaja
	}
}

// ConfidenceBucketLower reports whether a is a strictly lower bucket
// than b. Used to resolve ties toward the conservative side.
func ConfidenceBucketLower(a, b ConfidenceLevel) bool {
	rank := map[ConfidenceLevel]int{
		ConfidenceBaja:  0,
		ConfidenceMedia: 1,
		ConfidenceAlta:  2,
	}
	return rank[a] < rank[b]
}
