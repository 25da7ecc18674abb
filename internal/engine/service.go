package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/macrolens/backend/internal/bias"
	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/internal/invariants"
	"github.com/macrolens/backend/internal/narrative"
	"github.com/macrolens/backend/internal/radar"
	"github.com/macrolens/backend/internal/tactical"
	"github.com/macrolens/backend/internal/weights"
	"github.com/macrolens/backend/pkg/logger"
)

// calendarHorizon is how far ahead upcoming events are pulled for the
// radar penalty and the diagnostics snapshot.
const calendarHorizon = 72 * time.Hour

// ErrUnknownSymbol reports a symbol outside the configured universe.
// Callers branch on it with errors.Is.
var ErrUnknownSymbol = errors.New("unknown symbol")

// AssetView is the full read-model for one asset.
type AssetView struct {
	Asset        contracts.AssetMeta                               `json:"asset"`
	Bias         contracts.MacroBias                               `json:"bias"`
	Narrative    contracts.NarrativeOutput                         `json:"narrative"`
	Correlations map[contracts.Window]*contracts.CorrelationResult `json:"correlations"`
}

// Engine wires the scoring pipeline over the repositories. All methods
// are read paths; persistence happens only in the scheduled jobs.
type Engine struct {
	observations contracts.ObservationRepository
	correlations contracts.CorrelationRepository
	snapshots    contracts.FactorSnapshotRepository
	calendar     contracts.CalendarRepository

	universe  *weights.Universe
	scorer    *bias.Scorer
	tactical  *tactical.Builder
	narrative *narrative.Builder
	checker   *invariants.Checker
	ranker    *radar.Ranker
	history   *radar.HistoricalScorer

	logger *logger.Logger
}

// Deps bundles the engine dependencies.
type Deps struct {
	Observations contracts.ObservationRepository
	Correlations contracts.CorrelationRepository
	Snapshots    contracts.FactorSnapshotRepository
	Calendar     contracts.CalendarRepository
	History      contracts.SignalHistoryRepository
	Universe     *weights.Universe
	Table        *weights.Table
	Logger       *logger.Logger
}

// New creates the engine.
func New(d Deps) *Engine {
	return &Engine{
		observations: d.Observations,
		correlations: d.Correlations,
		snapshots:    d.Snapshots,
		calendar:     d.Calendar,
		universe:     d.Universe,
		scorer:       bias.NewScorer(d.Table, d.Logger),
		tactical:     tactical.NewBuilder(d.Logger),
		narrative:    narrative.NewBuilder(),
		checker:      invariants.NewChecker(d.Logger),
		ranker:       radar.NewRanker(d.Logger),
		history:      radar.NewHistoricalScorer(d.History, d.Logger),
		logger:       d.Logger,
	}
}

// BiasFor builds the bias + narrative view for one asset.
func (e *Engine) BiasFor(ctx context.Context, symbol string) (*AssetView, error) {
	asset, ok := e.universe.Get(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	inputs, asOf, err := e.snapshots.GetLatest(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("load factor snapshot for %s: %w", symbol, err)
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	corrs, err := e.correlations.GetLatestBySymbol(ctx, symbol, asset.Benchmark)
	if err != nil {
		return nil, fmt.Errorf("load correlations for %s: %w", symbol, err)
	}

	assetBias := e.scorer.Score(asset, inputs, asOf)
	return &AssetView{
		Asset:        asset,
		Bias:         assetBias,
		Narrative:    e.narrative.Build(asset, assetBias, corrs[contracts.Window12M]),
		Correlations: corrs,
	}, nil
}

// TacticalRows builds the tactical table for the whole universe.
// Assets whose inputs cannot be loaded are skipped, not fatal.
func (e *Engine) TacticalRows(ctx context.Context) ([]contracts.TacticalRow, error) {
	regime, err := e.USDRegime(ctx)
	if err != nil {
		e.logger.WithError(err).Warn("USD regime unavailable, treating as mixed")
		regime = contracts.RegimeMixto
	}

	now := time.Now().UTC()
	rows := make([]contracts.TacticalRow, 0, len(e.universe.Assets))
	for _, asset := range e.universe.Assets {
		view, err := e.BiasFor(ctx, asset.Symbol)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"symbol": asset.Symbol,
				"error":  err.Error(),
			}).Warn("Skipping asset in tactical table")
			continue
		}

		rows = append(rows, e.tactical.BuildRow(
			asset, view.Bias,
			view.Correlations[contracts.Window12M], view.Correlations[contracts.Window3M],
			regime, now,
		))
	}
	return rows, nil
}

// Radar builds the ranked opportunities list.
func (e *Engine) Radar(ctx context.Context) ([]contracts.Opportunity, error) {
	regime, err := e.USDRegime(ctx)
	if err != nil {
		regime = contracts.RegimeMixto
	}

	now := time.Now().UTC()
	events, err := e.calendar.Upcoming(ctx, now, now.Add(calendarHorizon))
	if err != nil {
		e.logger.WithError(err).Warn("Calendar unavailable, radar runs without event penalties")
		events = nil
	}

	candidates := make([]radar.Candidate, 0, len(e.universe.Assets))
	for _, asset := range e.universe.Assets {
		view, err := e.BiasFor(ctx, asset.Symbol)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"symbol": asset.Symbol,
				"error":  err.Error(),
			}).Warn("Skipping asset in radar")
			continue
		}

		row := e.tactical.BuildRow(
			asset, view.Bias,
			view.Correlations[contracts.Window12M], view.Correlations[contracts.Window3M],
			regime, now,
		)
		candidates = append(candidates, radar.Candidate{
			Asset:  asset,
			Bias:   view.Bias,
			Row:    row,
			Corr12: view.Correlations[contracts.Window12M],
			Corr3:  view.Correlations[contracts.Window3M],
		})
	}

	return e.ranker.Rank(candidates, events, now), nil
}

// HistoricalConfidence exposes the per-symbol signal success rate.
func (e *Engine) HistoricalConfidence(ctx context.Context, symbol string) (contracts.HistoricalConfidence, error) {
	return e.history.HistoricalConfidence(ctx, symbol)
}

// Diagnostics runs the invariants checker for every universe asset.
func (e *Engine) Diagnostics(ctx context.Context) (map[string][]contracts.InvariantResult, error) {
	regime, err := e.USDRegime(ctx)
	if err != nil {
		regime = contracts.RegimeMixto
	}

	now := time.Now().UTC()
	events, err := e.calendar.Upcoming(ctx, now, now.Add(calendarHorizon))
	if err != nil {
		events = nil
	}

	out := make(map[string][]contracts.InvariantResult, len(e.universe.Assets))
	for _, asset := range e.universe.Assets {
		view, err := e.BiasFor(ctx, asset.Symbol)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"symbol": asset.Symbol,
				"error":  err.Error(),
			}).Warn("Skipping asset in diagnostics")
			continue
		}

		row := e.tactical.BuildRow(
			asset, view.Bias,
			view.Correlations[contracts.Window12M], view.Correlations[contracts.Window3M],
			regime, now,
		)

		freshness, err := e.seriesFreshness(ctx, asset)
		if err != nil {
			e.logger.WithError(err).Warn("Series freshness unavailable for diagnostics")
		}

		out[asset.Symbol] = e.checker.Run(invariants.Snapshot{
			Asset:        asset,
			Bias:         view.Bias,
			Narrative:    view.Narrative,
			Row:          row,
			Regime:       regime,
			Correlations: view.Correlations,
			Series:       freshness,
			Events:       events,
			Now:          now,
		})
	}
	return out, nil
}

// seriesFreshness reads the last-update state of the asset's own
// series and its benchmark.
func (e *Engine) seriesFreshness(ctx context.Context, asset contracts.AssetMeta) ([]invariants.SeriesFreshness, error) {
	var out []invariants.SeriesFreshness
	for _, symbol := range []string{asset.Symbol, asset.Benchmark} {
		series, err := e.observations.GetSeries(ctx, symbol)
		if err != nil {
			return out, err
		}
		if series == nil || len(series.Points) == 0 {
			continue
		}
		out = append(out, invariants.SeriesFreshness{
			Symbol:    symbol,
			Frequency: series.Frequency,
			LastDate:  series.LastDate(),
		})
	}
	return out, nil
}
