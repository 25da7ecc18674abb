package tactical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
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

func usdjpy() contracts.AssetMeta {
	return contracts.AssetMeta{
		Symbol:    "USDJPY",
		Name:      "USD/JPY",
		Class:     contracts.ClassFXUSDBase,
		Base:      "USD",
		Quote:     "JPY",
		Benchmark: "DXY",
	}
}

func corr(symbol string, window contracts.Window, value float64) *contracts.CorrelationResult {
	size, _ := window.Size()
	return &contracts.CorrelationResult{
		Symbol:    symbol,
		Benchmark: "DXY",
		Window:    window,
		Value:     f(value),
		NObs:      size,
		Status:    contracts.StatusOK,
	}
}

func biasWith(direction contracts.Direction, score, conf float64) contracts.MacroBias {
	return contracts.MacroBias{
		Symbol:     "EURUSD",
		Score:      score,
		Direction:  direction,
		Confidence: conf,
		Drivers: []contracts.Driver{
			{Key: contracts.FactorUSDBias, Weight: 0.30, Sign: -1, Value: 0.5, Contribution: -0.15, Description: "fortaleza del dólar"},
		},
	}
}

func TestBuildRow_USDRegimeOverridesBias(t *testing.T) {
	b := NewBuilder(logger.NewNop())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	// Strong USD with |corr12m| at the 0.30 threshold flips a
	// USD-quoted pair to the sell side even under a bullish bias.
	bias := biasWith(contracts.DirectionLong, 50, 0.8)
	c12 := corr("EURUSD", contracts.Window12M, 0.30)

	row := b.BuildRow(eurusd(), bias, c12, nil, contracts.RegimeFuerte, now)

	assert.Equal(t, contracts.ActionSell, row.Action)
	assert.Contains(t, row.Motivo, "USD")
}

func TestBuildRow_USDRegimeBasePair(t *testing.T) {
	b := NewBuilder(logger.NewNop())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	bias := biasWith(contracts.DirectionNeutral, 0, 0.5)
	c12 := corr("USDJPY", contracts.Window12M, 0.55)

	row := b.BuildRow(usdjpy(), bias, c12, nil, contracts.RegimeFuerte, now)
	assert.Equal(t, contracts.ActionBuy, row.Action)
	assert.Contains(t, row.Motivo, "USD")

	row = b.BuildRow(usdjpy(), bias, c12, nil, contracts.RegimeDebil, now)
	assert.Equal(t, contracts.ActionSell, row.Action)
}

func TestBuildRow_WeakUSDBuysQuotePair(t *testing.T) {
	b := NewBuilder(logger.NewNop())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	bias := biasWith(contracts.DirectionShort, -30, 0.6)
	c12 := corr("EURUSD", contracts.Window12M, -0.45)

	row := b.BuildRow(eurusd(), bias, c12, nil, contracts.RegimeDebil, now)

	assert.Equal(t, contracts.ActionBuy, row.Action)
	assert.Contains(t, row.Motivo, "USD")
}

func TestBuildRow_WeakCorrelationFallsBackToBias(t *testing.T) {
	b := NewBuilder(logger.NewNop())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	// |corr12m| below 0.30: the regime alone does not drive the action.
	c12 := corr("EURUSD", contracts.Window12M, 0.29)

	row := b.BuildRow(eurusd(), biasWith(contracts.DirectionLong, 50, 0.8), c12, nil, contracts.RegimeFuerte, now)
	assert.Equal(t, contracts.ActionBuy, row.Action)
	assert.True(t, strings.HasPrefix(row.Motivo, "Sesgo macro alcista"), "motivo: %s", row.Motivo)

	row = b.BuildRow(eurusd(), biasWith(contracts.DirectionShort, -50, 0.8), c12, nil, contracts.RegimeFuerte, now)
	assert.Equal(t, contracts.ActionSell, row.Action)

	row = b.BuildRow(eurusd(), biasWith(contracts.DirectionNeutral, 5, 0.3), c12, nil, contracts.RegimeFuerte, now)
	assert.Equal(t, contracts.ActionRange, row.Action)
}

func TestBuildRow_MixedRegimeUsesBias(t *testing.T) {
	b := NewBuilder(logger.NewNop())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	c12 := corr("EURUSD", contracts.Window12M, 0.80)

	row := b.BuildRow(eurusd(), biasWith(contracts.DirectionLong, 50, 0.8), c12, nil, contracts.RegimeMixto, now)

	assert.Equal(t, contracts.ActionBuy, row.Action)
	assert.NotContains(t, row.Motivo, "USD")
}

func TestBuildRow_ConfidenceBuckets(t *testing.T) {
	b := NewBuilder(logger.NewNop())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		corr12m  float64
		biasConf float64
		want     contracts.ConfidenceLevel
	}{
		{"strong corr always alta", 0.75, 0.70, contracts.ConfidenceAlta},
		{"mid corr needs alta bias", 0.55, 0.50, contracts.ConfidenceMedia},
		{"mid corr with alta bias", 0.55, 0.80, contracts.ConfidenceAlta},
		{"weak corr caps at media", 0.30, 0.55, contracts.ConfidenceMedia},
		{"weak corr with baja bias", 0.30, 0.20, contracts.ConfidenceBaja},
		{"negative corr uses magnitude", -0.72, 0.20, contracts.ConfidenceAlta},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bias := biasWith(contracts.DirectionLong, 50, tc.biasConf)
			row := b.BuildRow(eurusd(), bias, corr("EURUSD", contracts.Window12M, tc.corr12m), nil, contracts.RegimeMixto, now)
			assert.Equal(t, tc.want, row.Confidence)
		})
	}
}

func TestBuildRow_MissingCorrelation(t *testing.T) {
	b := NewBuilder(logger.NewNop())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	insufficient := &contracts.CorrelationResult{
		Symbol:    "EURUSD",
		Benchmark: "DXY",
		Window:    contracts.Window12M,
		Value:     nil,
		NObs:      40,
		Status:    contracts.StatusInsufficientData,
	}

	row := b.BuildRow(eurusd(), biasWith(contracts.DirectionLong, 50, 0.8), insufficient, nil, contracts.RegimeFuerte, now)

	// Without a usable correlation the regime cannot drive the action
	// and the correlation column stays empty.
	assert.Equal(t, contracts.ActionBuy, row.Action)
	assert.Nil(t, row.Corr12M)
	assert.Equal(t, contracts.ConfidenceMedia, row.Confidence)
}
