package jobs

import (
	"context"
	"fmt"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/internal/external/calendar"
	"github.com/macrolens/backend/pkg/logger"
)

// CalendarScrapeJob refreshes the upcoming macro events table.
type CalendarScrapeJob struct {
	scraper  *calendar.Scraper
	calendar contracts.CalendarRepository
	logger   *logger.Logger
}

// NewCalendarScrapeJob creates the calendar scrape job.
func NewCalendarScrapeJob(scraper *calendar.Scraper, repo contracts.CalendarRepository, log *logger.Logger) *CalendarScrapeJob {
	return &CalendarScrapeJob{
		scraper:  scraper,
		calendar: repo,
		logger:   log,
	}
}

// Name returns the job name.
func (j *CalendarScrapeJob) Name() string {
	return "calendar_scrape"
}

// Schedule runs every four hours; event times shift intraday.
func (j *CalendarScrapeJob) Schedule() string {
	return "0 0 */4 * * *"
}

// Run scrapes and stores the events.
func (j *CalendarScrapeJob) Run(ctx context.Context) error {
	events, err := j.scraper.FetchUpcoming(ctx)
	if err != nil {
		return fmt.Errorf("scrape calendar: %w", err)
	}

	if err := j.calendar.SaveBatch(ctx, events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}

	j.logger.WithField("events", len(events)).Info("Calendar refreshed")
	return nil
}
