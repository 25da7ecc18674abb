package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macrolens/backend/internal/contracts"
)

// CalendarRepository implements contracts.CalendarRepository.
type CalendarRepository struct {
	pool *pgxpool.Pool
}

// NewCalendarRepository creates a new calendar repository.
func NewCalendarRepository(pool *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{pool: pool}
}

// Upcoming retrieves events scheduled inside [from, to), soonest first.
func (r *CalendarRepository) Upcoming(ctx context.Context, from, to time.Time) ([]contracts.CalendarEvent, error) {
	query := `
		SELECT country, currency, title, impact, scheduled_at
		FROM macro.calendar_events
		WHERE scheduled_at >= $1 AND scheduled_at < $2
		ORDER BY scheduled_at ASC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []contracts.CalendarEvent
	for rows.Next() {
		var ev contracts.CalendarEvent
		var impact string
		if err := rows.Scan(&ev.Country, &ev.Currency, &ev.Title, &impact, &ev.ScheduledAt); err != nil {
			return nil, err
		}
		ev.Impact = contracts.EventImpact(impact)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// SaveBatch upserts scraped events. The scrape runs repeatedly over
// the same horizon, so the (currency, title, scheduled_at) key absorbs
// duplicates.
func (r *CalendarRepository) SaveBatch(ctx context.Context, events []contracts.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO macro.calendar_events (country, currency, title, impact, scheduled_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (currency, title, scheduled_at) DO UPDATE SET
			country = EXCLUDED.country,
			impact = EXCLUDED.impact
	`
	for _, ev := range events {
		if _, err := r.pool.Exec(ctx, query, ev.Country, ev.Currency, ev.Title, string(ev.Impact), ev.ScheduledAt); err != nil {
			return err
		}
	}
	return nil
}
