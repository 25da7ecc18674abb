package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macrolens/backend/internal/contracts"
)

// FactorSnapshotRepository implements contracts.FactorSnapshotRepository.
// One row per (symbol, asof); sub-scores are nullable columns so a
// missing factor stays distinguishable from zero.
type FactorSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewFactorSnapshotRepository creates a new factor snapshot repository.
func NewFactorSnapshotRepository(pool *pgxpool.Pool) *FactorSnapshotRepository {
	return &FactorSnapshotRepository{pool: pool}
}

// GetLatest retrieves the most recent factor snapshot for a symbol.
func (r *FactorSnapshotRepository) GetLatest(ctx context.Context, symbol string) (*contracts.BiasInputs, time.Time, error) {
	query := `
		SELECT risk_regime, usd_bias, inflation_momentum, growth_momentum, external_balance, rates_context, asof
		FROM macro.factor_snapshots
		WHERE symbol = $1
		ORDER BY asof DESC
		LIMIT 1
	`

	var inputs contracts.BiasInputs
	var asOf time.Time
	err := r.pool.QueryRow(ctx, query, symbol).Scan(
		&inputs.RiskRegime, &inputs.USDBias, &inputs.InflationMomentum,
		&inputs.GrowthMomentum, &inputs.ExternalBalance, &inputs.RatesContext,
		&asOf,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, err
	}
	return &inputs, asOf, nil
}

// Save upserts one factor snapshot.
func (r *FactorSnapshotRepository) Save(ctx context.Context, symbol string, inputs *contracts.BiasInputs, asOf time.Time) error {
	query := `
		INSERT INTO macro.factor_snapshots
			(symbol, risk_regime, usd_bias, inflation_momentum, growth_momentum, external_balance, rates_context, asof)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (symbol, asof) DO UPDATE SET
			risk_regime = EXCLUDED.risk_regime,
			usd_bias = EXCLUDED.usd_bias,
			inflation_momentum = EXCLUDED.inflation_momentum,
			growth_momentum = EXCLUDED.growth_momentum,
			external_balance = EXCLUDED.external_balance,
			rates_context = EXCLUDED.rates_context
	`

	_, err := r.pool.Exec(ctx, query,
		symbol, inputs.RiskRegime, inputs.USDBias, inputs.InflationMomentum,
		inputs.GrowthMomentum, inputs.ExternalBalance, inputs.RatesContext, asOf,
	)
	return err
}
