package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macrolens/backend/internal/contracts"
)

// ObservationRepository implements contracts.ObservationRepository
// over the macro.observations table. Series are stored one row per
// (symbol, date), already deduplicated by the unique key.
type ObservationRepository struct {
	pool *pgxpool.Pool
}

// NewObservationRepository creates a new observation repository.
func NewObservationRepository(pool *pgxpool.Pool) *ObservationRepository {
	return &ObservationRepository{pool: pool}
}

// GetSeries retrieves the full ordered series for a symbol.
func (r *ObservationRepository) GetSeries(ctx context.Context, symbol string) (*contracts.Series, error) {
	return r.querySeries(ctx, symbol, `
		SELECT obs_date, obs_value
		FROM macro.observations
		WHERE symbol = $1
		ORDER BY obs_date ASC
	`, symbol)
}

// GetSeriesSince retrieves observations from a date onward.
func (r *ObservationRepository) GetSeriesSince(ctx context.Context, symbol string, from time.Time) (*contracts.Series, error) {
	return r.querySeries(ctx, symbol, `
		SELECT obs_date, obs_value
		FROM macro.observations
		WHERE symbol = $1 AND obs_date >= $2
		ORDER BY obs_date ASC
	`, symbol, from)
}

func (r *ObservationRepository) querySeries(ctx context.Context, symbol, query string, args ...interface{}) (*contracts.Series, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := &contracts.Series{Symbol: symbol}
	for rows.Next() {
		var o contracts.Observation
		if err := rows.Scan(&o.Date, &o.Value); err != nil {
			return nil, err
		}
		series.Points = append(series.Points, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	freq, err := r.frequency(ctx, symbol)
	if err != nil {
		return nil, err
	}
	series.Frequency = freq
	return series, nil
}

// frequency reads the cadence metadata for a symbol. Symbols without a
// registered frequency default to daily.
func (r *ObservationRepository) frequency(ctx context.Context, symbol string) (contracts.Frequency, error) {
	query := `
		SELECT frequency
		FROM macro.series_meta
		WHERE symbol = $1
	`

	var freq string
	err := r.pool.QueryRow(ctx, query, symbol).Scan(&freq)
	if err != nil {
		if isNoRows(err) {
			return contracts.FreqDaily, nil
		}
		return "", err
	}
	return contracts.Frequency(freq), nil
}

// SaveBatch upserts observations for a symbol and records its cadence.
func (r *ObservationRepository) SaveBatch(ctx context.Context, symbol string, freq contracts.Frequency, points []contracts.Observation) error {
	if len(points) == 0 {
		return nil
	}

	metaQuery := `
		INSERT INTO macro.series_meta (symbol, frequency, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (symbol) DO UPDATE SET
			frequency = EXCLUDED.frequency,
			updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, metaQuery, symbol, string(freq)); err != nil {
		return err
	}

	query := `
		INSERT INTO macro.observations (symbol, obs_date, obs_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol, obs_date) DO UPDATE SET
			obs_value = EXCLUDED.obs_value
	`
	for _, p := range points {
		if _, err := r.pool.Exec(ctx, query, symbol, p.Date, p.Value); err != nil {
			return err
		}
	}
	return nil
}
