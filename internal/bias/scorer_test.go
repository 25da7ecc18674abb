package bias

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/internal/weights"
	"github.com/macrolens/backend/pkg/logger"
)

func f(v float64) *float64 { return &v }

func testTable() *weights.Table {
	return &weights.Table{
		Version: "test",
		Classes: map[contracts.AssetClass]weights.ClassWeights{
			contracts.ClassFXUSDQuote: {
				contracts.FactorRiskRegime:        {Weight: 0.20, Sign: 1, Description: "apetito de riesgo global"},
				contracts.FactorUSDBias:           {Weight: 0.30, Sign: -1, Description: "fortaleza del dólar"},
				contracts.FactorInflationMomentum: {Weight: 0.15, Sign: 1, Description: "momento de inflación"},
				contracts.FactorGrowthMomentum:    {Weight: 0.15, Sign: 1, Description: "momento de crecimiento"},
				contracts.FactorExternalBalance:   {Weight: 0.10, Sign: 1, Description: "balanza exterior"},
				contracts.FactorRatesContext:      {Weight: 0.10, Sign: 1, Description: "contexto de tipos de interés"},
			},
		},
	}
}

func eurusd() contracts.AssetMeta {
	return contracts.AssetMeta{
		Symbol:    "EURUSD",
		Name:      "EUR/USD",
		Class:     contracts.ClassFXUSDQuote,
		Base:      "EUR",
		Quote:     "USD",
		Benchmark: "DXY",
	}
}

func TestScore_FullInputs(t *testing.T) {
	scorer := NewScorer(testTable(), logger.NewNop())
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	inputs := &contracts.BiasInputs{
		RiskRegime:        f(0.3),
		USDBias:           f(0.25),
		InflationMomentum: f(0.05),
		GrowthMomentum:    f(0.2),
		ExternalBalance:   f(0.02),
		RatesContext:      f(-0.15),
	}

	result := scorer.Score(eurusd(), inputs, asOf)

	assert.Equal(t, "EURUSD", result.Symbol)
	assert.Equal(t, 6, result.Meta.DriversUsed)
	assert.Equal(t, 6, result.Meta.DriversTotal)
	assert.InDelta(t, 1.0, result.Meta.Coverage, 1e-9)

	// Contributions: 0.06 - 0.075 + 0.0075 + 0.03 + 0.002 - 0.015 = 0.0095
	assert.InDelta(t, 0.95, result.Score, 1e-9)
	assert.Equal(t, contracts.DirectionNeutral, result.Direction)

	require.Len(t, result.Drivers, 6)
	usd := result.Drivers[1]
	assert.Equal(t, contracts.FactorUSDBias, usd.Key)
	assert.InDelta(t, -0.075, usd.Contribution, 1e-9, "contribution = value * weight * sign")
}

func TestScore_ConfidenceDropsWhenFactorRemoved(t *testing.T) {
	// Regression property: reducing a full factor set while the
	// remaining drivers conflict must strictly lower confidence.
	scorer := NewScorer(testTable(), logger.NewNop())
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	full := &contracts.BiasInputs{
		RiskRegime:        f(0.3),
		USDBias:           f(0.25),
		InflationMomentum: f(0.05),
		GrowthMomentum:    f(0.2),
		ExternalBalance:   f(0.02),
		RatesContext:      f(-0.15),
	}
	reduced := &contracts.BiasInputs{
		RiskRegime:        f(0.3),
		USDBias:           f(0.25),
		InflationMomentum: f(0.05),
		GrowthMomentum:    f(0.2),
		ExternalBalance:   f(0.02),
		// rates_context removed
	}

	c1 := scorer.Score(eurusd(), full, asOf).Confidence
	c2 := scorer.Score(eurusd(), reduced, asOf).Confidence

	assert.Less(t, c2, c1, "confidence must strictly decrease when coverage drops")
}

func TestScore_ConfidenceMonotoneInCoverage(t *testing.T) {
	// Holding coherence fixed, confidence never decreases with coverage.
	coherences := []float64{0.0, 0.3, 0.7, 1.0}
	for _, coh := range coherences {
		prev := -1.0
		for cov := 0.0; cov <= 1.0; cov += 1.0 / 6.0 {
			c := confidence(cov, coh)
			assert.GreaterOrEqual(t, c, prev)
			prev = c
		}
	}
}

func TestScore_Directions(t *testing.T) {
	scorer := NewScorer(testTable(), logger.NewNop())
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	// Every factor bearish for EURUSD: strong USD plus weak eurozone data.
	bearish := &contracts.BiasInputs{
		RiskRegime:        f(-0.8),
		USDBias:           f(1.0),
		InflationMomentum: f(-0.5),
		GrowthMomentum:    f(-0.6),
		ExternalBalance:   f(-0.5),
		RatesContext:      f(-0.9),
	}
	result := scorer.Score(eurusd(), bearish, asOf)
	assert.Equal(t, contracts.DirectionShort, result.Direction)
	assert.Less(t, result.Score, -40.0)
	assert.GreaterOrEqual(t, result.Confidence, 0.7)
	assert.InDelta(t, 1.0, result.Meta.Coherence, 1e-9, "all drivers agree in sign")

	bullish := &contracts.BiasInputs{
		RiskRegime:        f(0.8),
		USDBias:           f(-0.9),
		InflationMomentum: f(0.4),
		GrowthMomentum:    f(0.6),
		ExternalBalance:   f(0.3),
		RatesContext:      f(0.7),
	}
	result = scorer.Score(eurusd(), bullish, asOf)
	assert.Equal(t, contracts.DirectionLong, result.Direction)
	assert.Greater(t, result.Score, 40.0)
}

func TestScore_EmptyInputs(t *testing.T) {
	scorer := NewScorer(testTable(), logger.NewNop())
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	result := scorer.Score(eurusd(), &contracts.BiasInputs{}, asOf)

	assert.Equal(t, contracts.DirectionNeutral, result.Direction)
	assert.Zero(t, result.Confidence)
	assert.Zero(t, result.Score)
	assert.Equal(t, 0, result.Meta.DriversUsed)
	assert.Equal(t, 6, result.Meta.DriversTotal)
	assert.NotNil(t, result.Drivers, "consumers always receive a well-formed object")
}

func TestScore_NilInputs(t *testing.T) {
	scorer := NewScorer(testTable(), logger.NewNop())
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	result := scorer.Score(eurusd(), nil, asOf)

	assert.Equal(t, contracts.DirectionNeutral, result.Direction)
	assert.Zero(t, result.Confidence)
}

func TestScore_ScoreClamped(t *testing.T) {
	scorer := NewScorer(testTable(), logger.NewNop())
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	extreme := &contracts.BiasInputs{
		RiskRegime:        f(1),
		USDBias:           f(-1),
		InflationMomentum: f(1),
		GrowthMomentum:    f(1),
		ExternalBalance:   f(1),
		RatesContext:      f(1),
	}
	result := scorer.Score(eurusd(), extreme, asOf)

	assert.LessOrEqual(t, result.Score, 100.0)
	assert.GreaterOrEqual(t, result.Score, -100.0)
}
