package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/config"
	"github.com/macrolens/backend/pkg/httputil"
	"github.com/macrolens/backend/pkg/logger"
)

const samplePage = `
<html><body>
<table class="calendar">
<tbody>
<tr data-datetime="2026-08-28T12:30:00Z">
	<td class="country">US</td>
	<td class="currency">usd</td>
	<td class="impact" data-impact="high"></td>
	<td class="event">Nonfarm Payrolls</td>
</tr>
<tr data-datetime="2026-08-28T08:00:00Z">
	<td class="country">DE</td>
	<td class="currency">EUR</td>
	<td class="impact" data-impact="2"></td>
	<td class="event">IFO Business Climate</td>
</tr>
<tr data-datetime="not-a-date">
	<td class="country">UK</td>
	<td class="currency">GBP</td>
	<td class="impact" data-impact="high"></td>
	<td class="event">BoE Speech</td>
</tr>
<tr data-datetime="2026-08-29T00:00:00Z">
	<td class="country">JP</td>
	<td class="currency"></td>
	<td class="impact" data-impact="low"></td>
	<td class="event">Tokyo CPI</td>
</tr>
</tbody>
</table>
</body></html>`

func newTestScraper(baseURL string) *Scraper {
	return New(httputil.New(logger.NewNop()), config.CalendarConfig{BaseURL: baseURL}, logger.NewNop())
}

func TestFetchUpcoming_ParsesRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	events, err := newTestScraper(server.URL).FetchUpcoming(context.Background())

	require.NoError(t, err)
	// The unparseable-date row and the missing-currency row are dropped.
	require.Len(t, events, 2)

	nfp := events[0]
	assert.Equal(t, "US", nfp.Country)
	assert.Equal(t, "USD", nfp.Currency, "currency is normalized to upper case")
	assert.Equal(t, "Nonfarm Payrolls", nfp.Title)
	assert.Equal(t, contracts.ImpactHigh, nfp.Impact)
	assert.Equal(t, time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC), nfp.ScheduledAt)

	ifo := events[1]
	assert.Equal(t, contracts.ImpactMedium, ifo.Impact, "numeric impact codes map to levels")
}

func TestFetchUpcoming_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestScraper(server.URL).FetchUpcoming(context.Background())

	assert.Error(t, err)
}

func TestParseImpact(t *testing.T) {
	assert.Equal(t, contracts.ImpactHigh, parseImpact("High"))
	assert.Equal(t, contracts.ImpactHigh, parseImpact("3"))
	assert.Equal(t, contracts.ImpactMedium, parseImpact("medium"))
	assert.Equal(t, contracts.ImpactLow, parseImpact(""))
	assert.Equal(t, contracts.ImpactLow, parseImpact("unknown"))
}
