package radar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
)

var rankNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func corrResult(value float64, window contracts.Window) *contracts.CorrelationResult {
	return &contracts.CorrelationResult{
		Symbol:    "EURUSD",
		Benchmark: "DXY",
		Window:    window,
		Value:     f(value),
		Status:    contracts.StatusOK,
	}
}

func candidate(name string, confidence, score float64) Candidate {
	return Candidate{
		Asset: contracts.AssetMeta{
			Symbol:    name,
			Name:      name,
			Class:     contracts.ClassFXUSDQuote,
			Base:      "EUR",
			Quote:     "USD",
			Benchmark: "DXY",
		},
		Bias: contracts.MacroBias{Symbol: name, Score: score, Confidence: confidence},
		Row:  contracts.TacticalRow{Pair: name, Action: contracts.ActionSell, Motivo: "sesgo macro"},
	}
}

func TestCorrTrend(t *testing.T) {
	tests := []struct {
		name      string
		c3, c12   float64
		wantTrend string
	}{
		{"short window stronger", -0.70, -0.60, TrendStrengthening},
		{"short window weaker", -0.40, -0.60, TrendWeakening},
		{"inside the band", -0.62, -0.60, TrendStable},
		{"band boundary is stable", -0.65, -0.60, TrendStable},
		{"sign flip compares magnitudes", 0.70, -0.60, TrendStrengthening},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trend, _ := corrTrend(corrResult(tc.c3, contracts.Window3M), corrResult(tc.c12, contracts.Window12M))
			assert.Equal(t, tc.wantTrend, trend)
		})
	}
}

func TestCorrTrend_MissingValues(t *testing.T) {
	trend, delta := corrTrend(nil, corrResult(-0.60, contracts.Window12M))
	assert.Equal(t, TrendStable, trend)
	assert.Zero(t, delta)

	insufficient := &contracts.CorrelationResult{Status: contracts.StatusInsufficientData}
	trend, _ = corrTrend(insufficient, corrResult(-0.60, contracts.Window12M))
	assert.Equal(t, TrendStable, trend)
}

func TestRank_OrdersByScore(t *testing.T) {
	r := NewRanker(logger.NewNop())

	candidates := []Candidate{
		candidate("GBP/USD", 0.40, 20),
		candidate("EUR/USD", 0.80, -60),
		candidate("AUD/USD", 0.55, 30),
	}

	got := r.Rank(candidates, nil, rankNow)

	require.Len(t, got, 3)
	assert.Equal(t, "EUR/USD", got[0].Pair)
	assert.Equal(t, "AUD/USD", got[1].Pair)
	assert.Equal(t, "GBP/USD", got[2].Pair)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestRank_TopFiveOnly(t *testing.T) {
	r := NewRanker(logger.NewNop())

	var candidates []Candidate
	for i := 0; i < 7; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("PAIR%d", i), 0.5, float64(10*i)))
	}

	got := r.Rank(candidates, nil, rankNow)
	assert.Len(t, got, 5)
}

func TestRank_TiesKeepInsertionOrder(t *testing.T) {
	r := NewRanker(logger.NewNop())

	candidates := []Candidate{
		candidate("EUR/USD", 0.50, 30),
		candidate("GBP/USD", 0.50, 30),
		candidate("AUD/USD", 0.50, 30),
	}

	got := r.Rank(candidates, nil, rankNow)

	require.Len(t, got, 3)
	assert.Equal(t, "EUR/USD", got[0].Pair)
	assert.Equal(t, "GBP/USD", got[1].Pair)
	assert.Equal(t, "AUD/USD", got[2].Pair)
}

func TestRank_TrendAdjustsScore(t *testing.T) {
	r := NewRanker(logger.NewNop())

	strengthening := candidate("EUR/USD", 0.50, 30)
	strengthening.Corr3 = corrResult(-0.75, contracts.Window3M)
	strengthening.Corr12 = corrResult(-0.60, contracts.Window12M)

	flat := candidate("GBP/USD", 0.50, 30)

	got := r.Rank([]Candidate{flat, strengthening}, nil, rankNow)

	require.Len(t, got, 2)
	assert.Equal(t, "EUR/USD", got[0].Pair)
	assert.Equal(t, TrendStrengthening, got[0].CorrTrend)
	assert.InDelta(t, trendBonus, got[0].Score-got[1].Score, 1e-9)
}

func TestRank_HighImpactEventPenalty(t *testing.T) {
	r := NewRanker(logger.NewNop())

	events := []contracts.CalendarEvent{
		{Country: "US", Currency: "USD", Title: "NFP", Impact: contracts.ImpactHigh, ScheduledAt: rankNow.Add(6 * time.Hour)},
	}

	exposed := candidate("EUR/USD", 0.50, 30)
	sheltered := candidate("GBP/USD", 0.50, 30)
	sheltered.Asset.Base = "GBP"
	sheltered.Asset.Quote = "NZD" // no event currency on either leg

	got := r.Rank([]Candidate{exposed, sheltered}, events, rankNow)

	require.Len(t, got, 2)
	assert.Equal(t, "GBP/USD", got[0].Pair)
	assert.False(t, got[0].EventPenalty)
	assert.True(t, got[1].EventPenalty)
	assert.Contains(t, got[1].Motivo, "alto impacto")
}

func TestRank_EventOutsideHorizonIgnored(t *testing.T) {
	r := NewRanker(logger.NewNop())

	events := []contracts.CalendarEvent{
		{Currency: "USD", Title: "FOMC", Impact: contracts.ImpactHigh, ScheduledAt: rankNow.Add(36 * time.Hour)},
		{Currency: "USD", Title: "PMI", Impact: contracts.ImpactMedium, ScheduledAt: rankNow.Add(2 * time.Hour)},
	}

	got := r.Rank([]Candidate{candidate("EUR/USD", 0.50, 30)}, events, rankNow)

	require.Len(t, got, 1)
	assert.False(t, got[0].EventPenalty, "only high-impact events inside 24h penalize")
}
