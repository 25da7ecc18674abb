package narrative

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/backend/internal/contracts"
)

func f(v float64) *float64 { return &v }

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

func bearishBias() contracts.MacroBias {
	return contracts.MacroBias{
		Symbol:     "EURUSD",
		Score:      -76.5,
		Direction:  contracts.DirectionShort,
		Confidence: 1.0,
		Drivers: []contracts.Driver{
			{Key: contracts.FactorRiskRegime, Weight: 0.20, Sign: 1, Value: -0.8, Contribution: -0.16, Description: "apetito de riesgo global"},
			{Key: contracts.FactorUSDBias, Weight: 0.30, Sign: -1, Value: 1.0, Contribution: -0.30, Description: "fortaleza del dólar"},
			{Key: contracts.FactorInflationMomentum, Weight: 0.15, Sign: 1, Value: -0.5, Contribution: -0.075, Description: "momento de inflación"},
			{Key: contracts.FactorGrowthMomentum, Weight: 0.15, Sign: 1, Value: -0.6, Contribution: -0.09, Description: "momento de crecimiento"},
			{Key: contracts.FactorExternalBalance, Weight: 0.10, Sign: 1, Value: -0.5, Contribution: -0.05, Description: "balanza exterior"},
			{Key: contracts.FactorRatesContext, Weight: 0.10, Sign: 1, Value: -0.9, Contribution: -0.09, Description: "contexto de tipos de interés"},
		},
		Meta: contracts.BiasMeta{Coverage: 1.0, Coherence: 1.0, DriversUsed: 6, DriversTotal: 6},
		AsOf: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuild_BearishNarrative(t *testing.T) {
	b := NewBuilder()

	out := b.Build(eurusd(), bearishBias(), nil)

	assert.Contains(t, out.Headline, "bajista")
	assert.Contains(t, out.Headline, "EUR/USD")
	assert.NotContains(t, out.Headline, "alcista")

	require.GreaterOrEqual(t, len(out.Bullets), 3)
	require.LessOrEqual(t, len(out.Bullets), 5)
	for _, bullet := range out.Bullets {
		assert.NotEmpty(t, bullet)
	}

	// Strongest driver leads.
	assert.Contains(t, out.Bullets[0], "dólar")
	assert.Contains(t, out.ConfidenceNote, "alta")
}

func TestBuild_NoUnresolvedPlaceholders(t *testing.T) {
	b := NewBuilder()
	v := 0.42

	out := b.Build(eurusd(), bearishBias(), &contracts.CorrelationResult{
		Symbol:    "EURUSD",
		Benchmark: "DXY",
		Window:    contracts.Window12M,
		Value:     &v,
		NObs:      252,
		Status:    contracts.StatusOK,
	})

	all := append([]string{out.Headline, out.ConfidenceNote}, out.Bullets...)
	for _, s := range all {
		assert.False(t, strings.Contains(s, "{"), "unresolved placeholder in %q", s)
		assert.False(t, strings.Contains(s, "}"), "unresolved placeholder in %q", s)
	}
}

func TestBuild_CorrelationBullet(t *testing.T) {
	b := NewBuilder()
	v := -0.63

	out := b.Build(eurusd(), bearishBias(), &contracts.CorrelationResult{
		Symbol:    "EURUSD",
		Benchmark: "DXY",
		Window:    contracts.Window12M,
		Value:     &v,
		NObs:      252,
		Status:    contracts.StatusOK,
	})

	joined := strings.Join(out.Bullets, "\n")
	assert.Contains(t, joined, "DXY")
	assert.Contains(t, joined, "-0.63")
}

func TestBuild_NeutralLowCoverage(t *testing.T) {
	b := NewBuilder()

	bias := contracts.MacroBias{
		Symbol:     "EURUSD",
		Score:      4.0,
		Direction:  contracts.DirectionNeutral,
		Confidence: 0.22,
		Drivers: []contracts.Driver{
			{Key: contracts.FactorRiskRegime, Weight: 0.20, Sign: 1, Value: 0.2, Contribution: 0.04, Description: "apetito de riesgo global"},
		},
		Meta: contracts.BiasMeta{Coverage: 1.0 / 6.0, Coherence: 1.0, DriversUsed: 1, DriversTotal: 6},
	}

	out := b.Build(eurusd(), bias, nil)

	assert.Contains(t, out.Headline, "lateral")
	require.GreaterOrEqual(t, len(out.Bullets), 3, "narrative always carries at least three bullets")
	assert.Contains(t, out.ConfidenceNote, "baja")
}

func TestBuild_BullishHeadline(t *testing.T) {
	b := NewBuilder()

	bias := bearishBias()
	bias.Score = 55
	bias.Direction = contracts.DirectionLong

	out := b.Build(eurusd(), bias, nil)
	assert.Contains(t, out.Headline, "alcista")
}
