package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macrolens/backend/internal/contracts"
)

// CorrelationRepository implements contracts.CorrelationRepository.
// Rows are keyed (symbol, benchmark, window, asof) so re-running a
// refresh for the same day is idempotent.
type CorrelationRepository struct {
	pool *pgxpool.Pool
}

// NewCorrelationRepository creates a new correlation repository.
func NewCorrelationRepository(pool *pgxpool.Pool) *CorrelationRepository {
	return &CorrelationRepository{pool: pool}
}

// Upsert inserts or replaces one correlation row.
func (r *CorrelationRepository) Upsert(ctx context.Context, result *contracts.CorrelationResult) error {
	query := `
		INSERT INTO macro.correlations (symbol, benchmark, window_key, corr_value, n_obs, asof, status, last_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (symbol, benchmark, window_key, asof) DO UPDATE SET
			corr_value = EXCLUDED.corr_value,
			n_obs = EXCLUDED.n_obs,
			status = EXCLUDED.status,
			last_date = EXCLUDED.last_date
	`

	_, err := r.pool.Exec(ctx, query,
		result.Symbol, result.Benchmark, string(result.Window),
		result.Value, result.NObs, result.AsOf, string(result.Status), result.LastDate,
	)
	return err
}

// GetLatest retrieves the most recent row for a symbol/benchmark/window.
func (r *CorrelationRepository) GetLatest(ctx context.Context, symbol, benchmark string, window contracts.Window) (*contracts.CorrelationResult, error) {
	query := `
		SELECT symbol, benchmark, window_key, corr_value, n_obs, asof, status, last_date
		FROM macro.correlations
		WHERE symbol = $1 AND benchmark = $2 AND window_key = $3
		ORDER BY asof DESC
		LIMIT 1
	`

	var c contracts.CorrelationResult
	var windowKey, status string
	err := r.pool.QueryRow(ctx, query, symbol, benchmark, string(window)).Scan(
		&c.Symbol, &c.Benchmark, &windowKey, &c.Value, &c.NObs, &c.AsOf, &status, &c.LastDate,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	c.Window = contracts.Window(windowKey)
	c.Status = contracts.CorrelationStatus(status)
	return &c, nil
}

// GetLatestBySymbol retrieves the most recent row per window.
func (r *CorrelationRepository) GetLatestBySymbol(ctx context.Context, symbol, benchmark string) (map[contracts.Window]*contracts.CorrelationResult, error) {
	query := `
		SELECT DISTINCT ON (window_key)
			symbol, benchmark, window_key, corr_value, n_obs, asof, status, last_date
		FROM macro.correlations
		WHERE symbol = $1 AND benchmark = $2
		ORDER BY window_key, asof DESC
	`

	rows, err := r.pool.Query(ctx, query, symbol, benchmark)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make(map[contracts.Window]*contracts.CorrelationResult)
	for rows.Next() {
		var c contracts.CorrelationResult
		var windowKey, status string
		if err := rows.Scan(&c.Symbol, &c.Benchmark, &windowKey, &c.Value, &c.NObs, &c.AsOf, &status, &c.LastDate); err != nil {
			return nil, err
		}
		c.Window = contracts.Window(windowKey)
		c.Status = contracts.CorrelationStatus(status)
		results[c.Window] = &c
	}
	return results, rows.Err()
}
