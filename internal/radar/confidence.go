package radar

import (
	"context"
	"fmt"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
)

// minSampleSize is the fewest closed signals required before a success
// rate is statistically worth showing.
const minSampleSize = 5

// HistoricalScorer summarizes past signal outcomes per symbol.
type HistoricalScorer struct {
	history contracts.SignalHistoryRepository
	logger  *logger.Logger
}

// NewHistoricalScorer creates a historical confidence scorer.
func NewHistoricalScorer(history contracts.SignalHistoryRepository, log *logger.Logger) *HistoricalScorer {
	return &HistoricalScorer{
		history: history,
		logger:  log,
	}
}

// HistoricalConfidence computes the success rate of past closed
// signals for a symbol. Below the minimum sample size HasData is false
// and SuccessRate must not be read as a confidence of zero.
func (h *HistoricalScorer) HistoricalConfidence(ctx context.Context, symbol string) (contracts.HistoricalConfidence, error) {
	result := contracts.HistoricalConfidence{Symbol: symbol}

	outcomes, err := h.history.GetBySymbol(ctx, symbol)
	if err != nil {
		return result, fmt.Errorf("load signal history for %s: %w", symbol, err)
	}

	result.SampleSize = len(outcomes)
	if result.SampleSize < minSampleSize {
		h.logger.WithFields(map[string]interface{}{
			"symbol":  symbol,
			"samples": result.SampleSize,
		}).Debug("Not enough closed signals for historical confidence")
		return result, nil
	}

	wins := 0
	for _, o := range outcomes {
		if o.Success {
			wins++
		}
	}
	result.SuccessRate = float64(wins) / float64(result.SampleSize)
	result.HasData = true
	return result, nil
}
