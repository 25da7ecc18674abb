package jobs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/backend/internal/factors"
	"github.com/macrolens/backend/internal/weights"
)

func ingestedSymbols() map[string]bool {
	symbols := make(map[string]bool, len(DefaultSeries))
	for _, spec := range DefaultSeries {
		symbols[spec.symbol()] = true
	}
	return symbols
}

// TestDefaultSeries_CoversUniverse guards the contract between the
// ingestion set and the readers of the observation store: the
// correlation refresh loads every universe symbol and benchmark, and
// the regime detector loads the benchmark, so all of them must be
// stored by the ingestion job.
func TestDefaultSeries_CoversUniverse(t *testing.T) {
	weightsPath := "../../../config/weights.yaml"
	universePath := "../../../config/universe.yaml"
	if _, err := os.Stat(universePath); err != nil {
		t.Skip("shipped config not available")
	}

	table, err := weights.LoadTable(weightsPath)
	require.NoError(t, err)
	universe, err := weights.LoadUniverse(universePath, table)
	require.NoError(t, err)

	symbols := ingestedSymbols()
	for _, asset := range universe.Assets {
		assert.True(t, symbols[asset.Symbol], "series for %s is not ingested", asset.Symbol)
		assert.True(t, symbols[asset.Benchmark], "benchmark series %s is not ingested", asset.Benchmark)
	}
}

// TestDefaultSeries_CoversFactorProxies keeps the factor deriver fed.
func TestDefaultSeries_CoversFactorProxies(t *testing.T) {
	symbols := ingestedSymbols()
	for key, spec := range factors.DefaultProxies {
		assert.True(t, symbols[spec.Series], "proxy series %s for factor %s is not ingested", spec.Series, key)
	}
}

func TestSeriesSpec_SymbolDefaultsToID(t *testing.T) {
	assert.Equal(t, "DGS10", SeriesSpec{ID: "DGS10"}.symbol())
	assert.Equal(t, "EURUSD", SeriesSpec{ID: "DEXUSEU", Symbol: "EURUSD"}.symbol())
}
