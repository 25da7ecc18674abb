package invariants

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
)

// Thresholds used by the plausibility checks.
const (
	usdCorrThreshold    = 0.30 // |corr12m| above which the regime drives actions
	strongCorrWarn      = 0.50 // wrong-signed correlation this strong gets a WARN
	extremeYoYMagnitude = 100.0
)

// IndicatorReading is one indicator value inspected by the
// plausibility guard. YoY is in percent.
type IndicatorReading struct {
	Name string
	YoY  float64
}

// Snapshot is the read-only state the checker runs against. The
// checker never mutates it and never feeds back into the pipeline.
type Snapshot struct {
	Asset        contracts.AssetMeta
	Bias         contracts.MacroBias
	Narrative    contracts.NarrativeOutput
	Row          contracts.TacticalRow
	Regime       contracts.USDRegime
	Correlations map[contracts.Window]*contracts.CorrelationResult
	Series       []SeriesFreshness
	Indicators   []IndicatorReading
	Events       []contracts.CalendarEvent
	Now          time.Time
}

// Checker runs the cross-consistency diagnostics. Each check is
// independent; one failing check never stops the rest.
type Checker struct {
	logger *logger.Logger
}

// NewChecker creates an invariants checker.
func NewChecker(log *logger.Logger) *Checker {
	return &Checker{logger: log}
}

// Run executes every check against the snapshot and returns one
// result per check, in a fixed order.
func (c *Checker) Run(snap Snapshot) []contracts.InvariantResult {
	results := []contracts.InvariantResult{
		c.checkNarrativeTone(snap),
		c.checkUSDLogic(snap),
		c.checkCorrelationSign(snap),
		c.checkFreshness(snap),
		c.checkPlausibility(snap),
		c.checkEventDates(snap),
	}

	for _, r := range results {
		if r.Level == contracts.LevelFail {
			c.logger.WithFields(map[string]interface{}{
				"check":   r.Name,
				"symbol":  snap.Asset.Symbol,
				"message": r.Message,
			}).Error("Invariant check failed")
		}
	}
	return results
}

// checkNarrativeTone verifies the headline adjective matches the bias
// direction.
func (c *Checker) checkNarrativeTone(snap Snapshot) contracts.InvariantResult {
	result := contracts.InvariantResult{Name: "narrative_tone", Level: contracts.LevelPass, Message: "headline tone matches bias direction"}

	expected := "lateral"
	switch snap.Bias.Direction {
	case contracts.DirectionLong:
		expected = "alcista"
	case contracts.DirectionShort:
		expected = "bajista"
	}

	headline := strings.ToLower(snap.Narrative.Headline)
	if headline == "" {
		result.Level = contracts.LevelWarn
		result.Message = "narrative headline is empty"
		return result
	}
	if !strings.Contains(headline, expected) {
		result.Level = contracts.LevelFail
		result.Message = fmt.Sprintf("bias direction %s but headline %q lacks %q", snap.Bias.Direction, snap.Narrative.Headline, expected)
	}
	return result
}

// checkUSDLogic verifies that under a directional dollar regime with a
// meaningful 12m correlation, the tactical action points the way the
// regime dictates and the motivo names the USD.
func (c *Checker) checkUSDLogic(snap Snapshot) contracts.InvariantResult {
	result := contracts.InvariantResult{Name: "usd_logic", Level: contracts.LevelPass, Message: "tactical action consistent with USD regime"}

	usdLeg := snap.Asset.USDLeg()
	corr12 := snap.Correlations[contracts.Window12M]
	directional := snap.Regime == contracts.RegimeFuerte || snap.Regime == contracts.RegimeDebil

	if !directional || usdLeg == contracts.USDNone || corr12 == nil || !corr12.Valid() || corr12.Abs() < usdCorrThreshold {
		result.Message = "USD regime not driving the action"
		return result
	}

	expected := contracts.ActionSell
	if (snap.Regime == contracts.RegimeFuerte) == (usdLeg == contracts.USDBase) {
		expected = contracts.ActionBuy
	}

	if snap.Row.Action != expected {
		result.Level = contracts.LevelFail
		result.Message = fmt.Sprintf("regime %s with corr12m %+.2f expects %q, row has %q", snap.Regime, *corr12.Value, expected, snap.Row.Action)
		return result
	}
	if !strings.Contains(snap.Row.Motivo, "USD") {
		result.Level = contracts.LevelWarn
		result.Message = "action driven by the USD regime but motivo does not mention USD"
	}
	return result
}

// checkCorrelationSign flags 12m correlations whose sign contradicts
// the pair's relationship to the USD benchmark. EUR/USD against a USD
// index is expected negative; a strong positive reading is suspicious
// but not impossible, so it warns instead of failing.
func (c *Checker) checkCorrelationSign(snap Snapshot) contracts.InvariantResult {
	result := contracts.InvariantResult{Name: "correlation_sign", Level: contracts.LevelPass, Message: "correlation sign plausible"}

	corr12 := snap.Correlations[contracts.Window12M]
	if corr12 == nil || !corr12.Valid() {
		result.Message = "no 12m correlation available"
		return result
	}

	value := *corr12.Value
	switch snap.Asset.USDLeg() {
	case contracts.USDQuote:
		if value >= strongCorrWarn {
			result.Level = contracts.LevelWarn
			result.Message = fmt.Sprintf("%s vs %s corr12m %+.2f: USD-quoted pair expected negative", snap.Asset.Symbol, corr12.Benchmark, value)
		}
	case contracts.USDBase:
		if value <= -strongCorrWarn {
			result.Level = contracts.LevelWarn
			result.Message = fmt.Sprintf("%s vs %s corr12m %+.2f: USD-based pair expected positive", snap.Asset.Symbol, corr12.Benchmark, value)
		}
	}
	return result
}

// checkFreshness applies the per-frequency SLA table to every stored
// series in the snapshot.
func (c *Checker) checkFreshness(snap Snapshot) contracts.InvariantResult {
	result := contracts.InvariantResult{Name: "freshness_sla", Level: contracts.LevelPass, Message: "all series within their freshness SLA"}

	var breaches []string
	for _, s := range snap.Series {
		if stale, age, unit := s.IsStale(snap.Now); stale {
			breaches = append(breaches, fmt.Sprintf("%s (%s, %d %s old)", s.Symbol, s.Frequency, age, unit))
		}
	}
	if len(breaches) > 0 {
		result.Level = contracts.LevelWarn
		result.Message = "stale series: " + strings.Join(breaches, ", ")
	}
	return result
}

// checkPlausibility flags indicator readings with extreme magnitudes.
// A YoY change in the hundreds of percent is almost always a unit or
// ingestion bug and must never be silently trusted.
func (c *Checker) checkPlausibility(snap Snapshot) contracts.InvariantResult {
	result := contracts.InvariantResult{Name: "plausibility", Level: contracts.LevelPass, Message: "indicator magnitudes plausible"}

	var outliers []string
	for _, ind := range snap.Indicators {
		if math.Abs(ind.YoY) >= extremeYoYMagnitude {
			outliers = append(outliers, fmt.Sprintf("%s YoY %+.1f%%", ind.Name, ind.YoY))
		}
	}
	if len(outliers) > 0 {
		result.Level = contracts.LevelWarn
		result.Message = "extreme readings: " + strings.Join(outliers, ", ")
	}
	return result
}

// checkEventDates fails when an "upcoming" calendar entry is dated in
// the past, which indicates a bookkeeping bug upstream.
func (c *Checker) checkEventDates(snap Snapshot) contracts.InvariantResult {
	result := contracts.InvariantResult{Name: "event_dates", Level: contracts.LevelPass, Message: "upcoming events are in the future"}

	var past []string
	for _, ev := range snap.Events {
		if ev.ScheduledAt.Before(snap.Now) {
			past = append(past, fmt.Sprintf("%s %s at %s", ev.Currency, ev.Title, ev.ScheduledAt.Format(time.RFC3339)))
		}
	}
	if len(past) > 0 {
		result.Level = contracts.LevelFail
		result.Message = "past-dated upcoming events: " + strings.Join(past, ", ")
	}
	return result
}
