package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macrolens/backend/internal/contracts"
)

// SignalHistoryRepository implements contracts.SignalHistoryRepository.
// Only closed signals are stored; open positions never reach this table.
type SignalHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewSignalHistoryRepository creates a new signal history repository.
func NewSignalHistoryRepository(pool *pgxpool.Pool) *SignalHistoryRepository {
	return &SignalHistoryRepository{pool: pool}
}

// GetBySymbol retrieves all closed signals for a symbol, oldest first.
func (r *SignalHistoryRepository) GetBySymbol(ctx context.Context, symbol string) ([]contracts.SignalOutcome, error) {
	query := `
		SELECT pair, action, opened_at, closed_at, success
		FROM macro.signal_history
		WHERE symbol = $1
		ORDER BY closed_at ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []contracts.SignalOutcome
	for rows.Next() {
		var o contracts.SignalOutcome
		var action string
		if err := rows.Scan(&o.Pair, &action, &o.OpenedAt, &o.ClosedAt, &o.Success); err != nil {
			return nil, err
		}
		o.Action = contracts.Action(action)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// Save inserts one closed signal. symbol is derived from the pair
// display name by the caller.
func (r *SignalHistoryRepository) Save(ctx context.Context, outcome *contracts.SignalOutcome) error {
	query := `
		INSERT INTO macro.signal_history (symbol, pair, action, opened_at, closed_at, success)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (symbol, opened_at) DO UPDATE SET
			action = EXCLUDED.action,
			closed_at = EXCLUDED.closed_at,
			success = EXCLUDED.success
	`

	symbol := symbolFromPair(outcome.Pair)
	_, err := r.pool.Exec(ctx, query, symbol, outcome.Pair, string(outcome.Action), outcome.OpenedAt, outcome.ClosedAt, outcome.Success)
	return err
}

// symbolFromPair strips the slash from a display pair: "EUR/USD" ->
// "EURUSD". Non-pair names pass through unchanged.
func symbolFromPair(pair string) string {
	out := make([]byte, 0, len(pair))
	for i := 0; i < len(pair); i++ {
		if pair[i] == '/' {
			continue
		}
		out = append(out, pair[i])
	}
	return string(out)
}
