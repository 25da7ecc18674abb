package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/config"
	"github.com/macrolens/backend/pkg/httputil"
	"github.com/macrolens/backend/pkg/logger"
)

// Scraper pulls upcoming macro events from the public calendar page.
// The page has no API, so rows are read from the HTML table directly.
type Scraper struct {
	http   *httputil.Client
	config config.CalendarConfig
	logger *logger.Logger
}

// New creates a calendar scraper.
func New(httpClient *httputil.Client, cfg config.CalendarConfig, log *logger.Logger) *Scraper {
	return &Scraper{
		http:   httpClient,
		config: cfg,
		logger: log,
	}
}

// FetchUpcoming scrapes the upcoming events. Rows that cannot be
// parsed are skipped with a warning; a single malformed row must not
// lose the whole scrape.
func (s *Scraper) FetchUpcoming(ctx context.Context) ([]contracts.CalendarEvent, error) {
	resp, err := s.http.Get(ctx, s.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch calendar page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse calendar page: %w", err)
	}

	var events []contracts.CalendarEvent
	doc.Find("table.calendar tbody tr").Each(func(i int, row *goquery.Selection) {
		event, ok := s.parseRow(row)
		if !ok {
			return
		}
		events = append(events, event)
	})

	s.logger.WithField("events", len(events)).Info("Calendar scraped")
	return events, nil
}

func (s *Scraper) parseRow(row *goquery.Selection) (contracts.CalendarEvent, bool) {
	var event contracts.CalendarEvent

	datetime, exists := row.Attr("data-datetime")
	if !exists {
		return event, false
	}
	scheduledAt, err := time.Parse(time.RFC3339, datetime)
	if err != nil {
		s.logger.WithField("datetime", datetime).Warn("Skipping calendar row with unparseable datetime")
		return event, false
	}

	event.ScheduledAt = scheduledAt.UTC()
	event.Country = strings.TrimSpace(row.Find("td.country").Text())
	event.Currency = strings.ToUpper(strings.TrimSpace(row.Find("td.currency").Text()))
	event.Title = strings.TrimSpace(row.Find("td.event").Text())
	event.Impact = parseImpact(row.Find("td.impact").AttrOr("data-impact", ""))

	if event.Currency == "" || event.Title == "" {
		return event, false
	}
	return event, true
}

func parseImpact(raw string) contracts.EventImpact {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high", "3":
		return contracts.ImpactHigh
	case "medium", "2":
		return contracts.ImpactMedium
	default:
		return contracts.ImpactLow
	}
}
