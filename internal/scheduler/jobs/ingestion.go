package jobs

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/internal/external/fred"
	"github.com/macrolens/backend/pkg/config"
	"github.com/macrolens/backend/pkg/logger"
)

// SeriesSpec names one provider series to ingest, the symbol it is
// stored under, and its cadence. An empty Symbol stores the series
// under the provider ID.
type SeriesSpec struct {
	ID        string
	Symbol    string
	Frequency contracts.Frequency
}

func (s SeriesSpec) symbol() string {
	if s.Symbol != "" {
		return s.Symbol
	}
	return s.ID
}

// DefaultSeries is the standard ingestion set: the pair and benchmark
// price series the correlation and regime readers load by universe
// symbol, plus the factor proxy series under their provider IDs.
var DefaultSeries = []SeriesSpec{
	{ID: "DEXUSEU", Symbol: "EURUSD", Frequency: contracts.FreqDaily},
	{ID: "DEXUSUK", Symbol: "GBPUSD", Frequency: contracts.FreqDaily},
	{ID: "DEXUSAL", Symbol: "AUDUSD", Frequency: contracts.FreqDaily},
	{ID: "DEXJPUS", Symbol: "USDJPY", Frequency: contracts.FreqDaily},
	{ID: "DEXSZUS", Symbol: "USDCHF", Frequency: contracts.FreqDaily},
	{ID: "GOLDPMGBD228NLBM", Symbol: "XAUUSD", Frequency: contracts.FreqDaily},
	{ID: "SP500", Symbol: "SPX", Frequency: contracts.FreqDaily},
	{ID: "DTWEXBGS", Symbol: "DXY", Frequency: contracts.FreqDaily}, // broad dollar index
	{ID: "DGS10", Frequency: contracts.FreqDaily},
	{ID: "CPIAUCSL", Frequency: contracts.FreqMonthly},
	{ID: "INDPRO", Frequency: contracts.FreqMonthly},
	{ID: "BOPGSTB", Frequency: contracts.FreqMonthly},
}

// IngestionJob pulls provider series into the observation store. One
// series at a time, paced by the provider rate limit.
type IngestionJob struct {
	provider     *fred.Client
	observations contracts.ObservationRepository
	series       []SeriesSpec
	limiter      *rate.Limiter
	logger       *logger.Logger
}

// NewIngestionJob creates the ingestion job.
func NewIngestionJob(provider *fred.Client, observations contracts.ObservationRepository, series []SeriesSpec, cfg *config.Config, log *logger.Logger) *IngestionJob {
	if len(series) == 0 {
		series = DefaultSeries
	}
	return &IngestionJob{
		provider:     provider,
		observations: observations,
		series:       series,
		limiter:      rate.NewLimiter(rate.Limit(cfg.FRED.RatePerSecond), 1),
		logger:       log,
	}
}

// Name returns the job name.
func (j *IngestionJob) Name() string {
	return "series_ingestion"
}

// Schedule runs on weekdays after the US close.
func (j *IngestionJob) Schedule() string {
	return "0 30 22 * * 1-5"
}

// Run ingests every configured series. A failing series is logged and
// skipped so one provider hiccup does not lose the whole batch.
func (j *IngestionJob) Run(ctx context.Context) error {
	from := time.Now().UTC().AddDate(-3, 0, 0)
	failures := 0

	for _, spec := range j.series {
		if err := j.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		series, err := j.provider.GetSeries(ctx, spec.ID, from)
		if err != nil {
			failures++
			j.logger.WithFields(map[string]interface{}{
				"series": spec.ID,
				"error":  err.Error(),
			}).Error("Series ingestion failed, skipping")
			continue
		}

		if err := j.observations.SaveBatch(ctx, spec.symbol(), spec.Frequency, series.Points); err != nil {
			failures++
			j.logger.WithFields(map[string]interface{}{
				"series": spec.ID,
				"symbol": spec.symbol(),
				"error":  err.Error(),
			}).Error("Series persistence failed, skipping")
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"series": spec.ID,
			"symbol": spec.symbol(),
			"points": len(series.Points),
		}).Info("Series ingested")
	}

	if failures == len(j.series) {
		return fmt.Errorf("all %d series failed to ingest", failures)
	}
	return nil
}
