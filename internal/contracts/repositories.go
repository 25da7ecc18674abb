package contracts

import (
	"context"
	"time"
)

// ObservationRepository reads and writes raw series data.
type ObservationRepository interface {
	// GetSeries returns the full ordered series for a symbol.
	GetSeries(ctx context.Context, symbol string) (*Series, error)

	// GetSeriesSince returns observations from a date onward.
	GetSeriesSince(ctx context.Context, symbol string, from time.Time) (*Series, error)

	// SaveBatch upserts observations for a symbol.
	SaveBatch(ctx context.Context, symbol string, freq Frequency, points []Observation) error
}

// CorrelationRepository persists correlation rows. Upsert is keyed by
// (symbol, benchmark, window, asof) and idempotent.
type CorrelationRepository interface {
	Upsert(ctx context.Context, result *CorrelationResult) error

	// GetLatest returns the most recent row for a symbol/benchmark/window.
	GetLatest(ctx context.Context, symbol, benchmark string, window Window) (*CorrelationResult, error)

	// GetLatestBySymbol returns the most recent row per window.
	GetLatestBySymbol(ctx context.Context, symbol, benchmark string) (map[Window]*CorrelationResult, error)
}

// FactorSnapshotRepository reads and writes macro factor snapshots.
type FactorSnapshotRepository interface {
	GetLatest(ctx context.Context, symbol string) (*BiasInputs, time.Time, error)
	Save(ctx context.Context, symbol string, inputs *BiasInputs, asOf time.Time) error
}

// CalendarRepository stores upcoming macro events.
type CalendarRepository interface {
	Upcoming(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)
	SaveBatch(ctx context.Context, events []CalendarEvent) error
}

// SignalHistoryRepository stores closed tactical signals.
type SignalHistoryRepository interface {
	GetBySymbol(ctx context.Context, symbol string) ([]SignalOutcome, error)
	Save(ctx context.Context, outcome *SignalOutcome) error
}
