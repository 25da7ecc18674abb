package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/config"
	"github.com/macrolens/backend/pkg/httputil"
	"github.com/macrolens/backend/pkg/logger"
	"github.com/macrolens/backend/pkg/redis"
)

// Client fetches observation series from the FRED API. All requests go
// through the shared retrying HTTP client and the cross-process rate
// limiter.
type Client struct {
	http   *httputil.Client
	cache  *redis.Cache
	config config.FREDConfig
	logger *logger.Logger
}

// New creates a FRED client.
func New(httpClient *httputil.Client, cache *redis.Cache, cfg config.FREDConfig, log *logger.Logger) *Client {
	return &Client{
		http:   httpClient,
		cache:  cache,
		config: cfg,
		logger: log,
	}
}

// observationsResponse mirrors the provider payload. Values arrive as
// strings; missing observations are "." and are dropped.
type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// GetSeries fetches all observations for a series from a start date.
// Results are cached per symbol with the daily TTL.
func (c *Client) GetSeries(ctx context.Context, seriesID string, from time.Time) (*contracts.Series, error) {
	cacheKey := redis.SeriesKey(seriesID)

	var cached contracts.Series
	if hit, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		c.logger.WithField("series", seriesID).Debug("Series cache hit")
		return &cached, nil
	}

	endpoint := fmt.Sprintf("%s/series/observations?%s", c.config.BaseURL, url.Values{
		"series_id":         {seriesID},
		"api_key":           {c.config.APIKey},
		"file_type":         {"json"},
		"observation_start": {from.Format("2006-01-02")},
	}.Encode())

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch series %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch series %s: status %d: %s", seriesID, resp.StatusCode, body)
	}

	var payload observationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode series %s: %w", seriesID, err)
	}

	series := &contracts.Series{Symbol: seriesID}
	for _, obs := range payload.Observations {
		if obs.Value == "." || obs.Value == "" {
			continue
		}
		date, err := time.Parse("2006-01-02", obs.Date)
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"series": seriesID,
				"date":   obs.Date,
			}).Warn("Skipping observation with unparseable date")
			continue
		}
		value, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		series.Points = append(series.Points, contracts.Observation{Date: date, Value: value})
	}

	if err := c.cache.Set(ctx, cacheKey, series, redis.TTLDaily); err != nil {
		c.logger.WithError(err).Warn("Failed to cache series")
	}

	c.logger.WithFields(map[string]interface{}{
		"series": seriesID,
		"points": len(series.Points),
	}).Info("Series fetched")

	return series, nil
}
