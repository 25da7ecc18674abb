package factors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
)

type fakeObservations struct {
	series map[string]*contracts.Series
}

func (f *fakeObservations) GetSeries(_ context.Context, symbol string) (*contracts.Series, error) {
	return f.series[symbol], nil
}

func (f *fakeObservations) GetSeriesSince(_ context.Context, symbol string, _ time.Time) (*contracts.Series, error) {
	return f.series[symbol], nil
}

func (f *fakeObservations) SaveBatch(_ context.Context, _ string, _ contracts.Frequency, _ []contracts.Observation) error {
	return nil
}

var asOf = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

// twoPoint builds a series with one reading at the lookback cutoff and
// one current reading.
func twoPoint(symbol string, lookbackDays int, pastValue, lastValue float64) *contracts.Series {
	return &contracts.Series{
		Symbol:    symbol,
		Frequency: contracts.FreqDaily,
		Points: []contracts.Observation{
			{Date: asOf.AddDate(0, 0, -lookbackDays-1), Value: pastValue},
			{Date: asOf, Value: lastValue},
		},
	}
}

func TestDerive_RelativeChangeScaledAndClamped(t *testing.T) {
	// SPX up 5% over the 63-day lookback with scale 0.10 -> 0.5.
	repo := &fakeObservations{series: map[string]*contracts.Series{
		"SPX": twoPoint("SPX", 63, 100, 105),
	}}
	d := NewDeriver(repo, nil, logger.NewNop())

	inputs, err := d.Derive(context.Background(), asOf)

	require.NoError(t, err)
	require.NotNil(t, inputs.RiskRegime)
	assert.InDelta(t, 0.5, *inputs.RiskRegime, 1e-9)
	assert.Nil(t, inputs.USDBias, "missing proxy series leaves the sub-score null")
}

func TestDerive_InvertFlipsSign(t *testing.T) {
	// Rising CPI is a worsening inflation reading.
	repo := &fakeObservations{series: map[string]*contracts.Series{
		"CPIAUCSL": twoPoint("CPIAUCSL", 180, 100, 101),
	}}
	d := NewDeriver(repo, nil, logger.NewNop())

	inputs, err := d.Derive(context.Background(), asOf)

	require.NoError(t, err)
	require.NotNil(t, inputs.InflationMomentum)
	assert.InDelta(t, -0.5, *inputs.InflationMomentum, 1e-9)
}

func TestDerive_ClampsToUnitRange(t *testing.T) {
	repo := &fakeObservations{series: map[string]*contracts.Series{
		"SPX": twoPoint("SPX", 63, 100, 160),
	}}
	d := NewDeriver(repo, nil, logger.NewNop())

	inputs, err := d.Derive(context.Background(), asOf)

	require.NoError(t, err)
	require.NotNil(t, inputs.RiskRegime)
	assert.InDelta(t, 1.0, *inputs.RiskRegime, 1e-9)
}

func TestDerive_EmptyUniverseYieldsEmptyInputs(t *testing.T) {
	d := NewDeriver(&fakeObservations{series: map[string]*contracts.Series{}}, nil, logger.NewNop())

	inputs, err := d.Derive(context.Background(), asOf)

	require.NoError(t, err)
	assert.True(t, inputs.IsEmpty())
}

func TestDerive_ZeroBaseReadingSkipped(t *testing.T) {
	repo := &fakeObservations{series: map[string]*contracts.Series{
		"BOPGSTB": twoPoint("BOPGSTB", 180, 0, 5),
	}}
	d := NewDeriver(repo, nil, logger.NewNop())

	inputs, err := d.Derive(context.Background(), asOf)

	require.NoError(t, err)
	assert.Nil(t, inputs.ExternalBalance)
}
