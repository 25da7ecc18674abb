package jobs

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/internal/correlation"
	"github.com/macrolens/backend/internal/weights"
	"github.com/macrolens/backend/pkg/logger"
)

// historyYears bounds how much series history the refresh loads; the
// longest window needs roughly two years plus fill slack.
const historyYears = 3

// CorrelationRefreshJob recomputes every correlation window for every
// universe asset. Assets are processed sequentially and paced so the
// database load stays flat.
type CorrelationRefreshJob struct {
	observations contracts.ObservationRepository
	correlations contracts.CorrelationRepository
	calculator   *correlation.Calculator
	universe     *weights.Universe
	limiter      *rate.Limiter
	logger       *logger.Logger
}

// NewCorrelationRefreshJob creates the correlation refresh job.
func NewCorrelationRefreshJob(
	observations contracts.ObservationRepository,
	correlations contracts.CorrelationRepository,
	universe *weights.Universe,
	log *logger.Logger,
) *CorrelationRefreshJob {
	return &CorrelationRefreshJob{
		observations: observations,
		correlations: correlations,
		calculator:   correlation.NewCalculator(log),
		universe:     universe,
		limiter:      rate.NewLimiter(rate.Limit(2), 1), // 2 assets/second
		logger:       log,
	}
}

// Name returns the job name.
func (j *CorrelationRefreshJob) Name() string {
	return "correlation_refresh"
}

// Schedule runs nightly after ingestion.
func (j *CorrelationRefreshJob) Schedule() string {
	return "0 0 23 * * 1-5"
}

// Run refreshes correlations for the whole universe. A failing asset
// is logged and skipped; the batch continues.
func (j *CorrelationRefreshJob) Run(ctx context.Context) error {
	asOf := time.Now().UTC()
	from := asOf.AddDate(-historyYears, 0, 0)
	failures := 0

	for _, asset := range j.universe.Assets {
		if err := j.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		if err := j.refreshAsset(ctx, asset, from, asOf); err != nil {
			failures++
			j.logger.WithFields(map[string]interface{}{
				"symbol": asset.Symbol,
				"error":  err.Error(),
			}).Error("Correlation refresh failed for asset, skipping")
		}
	}

	if failures == len(j.universe.Assets) && failures > 0 {
		return fmt.Errorf("correlation refresh failed for all %d assets", failures)
	}
	return nil
}

func (j *CorrelationRefreshJob) refreshAsset(ctx context.Context, asset contracts.AssetMeta, from, asOf time.Time) error {
	assetSeries, err := j.observations.GetSeriesSince(ctx, asset.Symbol, from)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	benchSeries, err := j.observations.GetSeriesSince(ctx, asset.Benchmark, from)
	if err != nil {
		return fmt.Errorf("load benchmark series: %w", err)
	}

	var assetPoints, benchPoints []contracts.Observation
	if assetSeries != nil {
		assetPoints = assetSeries.Points
	}
	if benchSeries != nil {
		benchPoints = benchSeries.Points
	}

	results := j.calculator.CalculateAll(asset.Symbol, asset.Benchmark, assetPoints, benchPoints, asOf)
	for i := range results {
		if err := j.correlations.Upsert(ctx, &results[i]); err != nil {
			return fmt.Errorf("upsert %s window: %w", results[i].Window, err)
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"symbol":  asset.Symbol,
		"windows": len(results),
	}).Info("Correlations refreshed")
	return nil
}
