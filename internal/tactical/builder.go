package tactical

import (
	"fmt"
	"strings"
	"time"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
)

// usdCorrThreshold is the minimum |corr12m| against the USD benchmark
// for the dollar regime to drive the action.
const usdCorrThreshold = 0.30

// Builder turns bias + correlation + USD regime into an actionable
// per-pair row. Rows are derived on demand and never persisted as
// ground truth.
type Builder struct {
	logger *logger.Logger
}

// NewBuilder creates a new tactical signal builder.
func NewBuilder(log *logger.Logger) *Builder {
	return &Builder{logger: log}
}

// BuildRow builds the tactical row for one pair.
func (b *Builder) BuildRow(pair contracts.AssetMeta, bias contracts.MacroBias, corr12, corr3 *contracts.CorrelationResult, regime contracts.USDRegime, now time.Time) contracts.TacticalRow {
	row := contracts.TacticalRow{
		Pair:        pair.Name,
		GeneratedAt: now,
	}
	if corr12 != nil && corr12.Valid() {
		row.Corr12M = corr12.Value
	}
	if corr3 != nil && corr3.Valid() {
		row.Corr3M = corr3.Value
	}

	action, motivo := b.decideAction(pair, bias, corr12, regime)
	row.Action = action
	row.Motivo = motivo

	corrAbs := 0.0
	if corr12 != nil && corr12.Valid() {
		corrAbs = corr12.Abs()
	}
	row.Confidence = bucketConfidence(corrAbs, contracts.ConfidenceBucket(bias.Confidence))

	return row
}

// decideAction applies the USD-regime rule first, then falls back to
// the macro bias direction. Whenever the action comes from the USD
// regime the motivo names the USD explicitly.
func (b *Builder) decideAction(pair contracts.AssetMeta, bias contracts.MacroBias, corr12 *contracts.CorrelationResult, regime contracts.USDRegime) (contracts.Action, string) {
	usdLeg := pair.USDLeg()
	regimeDirectional := regime == contracts.RegimeFuerte || regime == contracts.RegimeDebil

	if regimeDirectional && usdLeg != contracts.USDNone && corr12 != nil && corr12.Valid() && corr12.Abs() >= usdCorrThreshold {
		// USD strength weakens USD-quoted pairs and lifts USD-based
		// ones; a weak dollar is the mirror image.
		var action contracts.Action
		if regime == contracts.RegimeFuerte {
			if usdLeg == contracts.USDQuote {
				action = contracts.ActionSell
			} else {
				action = contracts.ActionBuy
			}
		} else {
			if usdLeg == contracts.USDQuote {
				action = contracts.ActionBuy
			} else {
				action = contracts.ActionSell
			}
		}

		tone := "apoyo alcista para el par"
		if action == contracts.ActionSell {
			tone = "presión bajista sobre el par"
		}
		motivo := fmt.Sprintf("USD %s y correlación 12m %+.2f con %s: %s",
			strings.ToLower(string(regime)), *corr12.Value, pair.Benchmark, tone)
		return action, motivo
	}

	switch bias.Direction {
	case contracts.DirectionLong:
		return contracts.ActionBuy, fmt.Sprintf("Sesgo macro alcista (%+.0f) %s", bias.Score, leadDriver(bias))
	case contracts.DirectionShort:
		return contracts.ActionSell, fmt.Sprintf("Sesgo macro bajista (%+.0f) %s", bias.Score, leadDriver(bias))
	default:
		return contracts.ActionRange, "Sesgo macro neutral; operativa de rango táctico"
	}
}

// leadDriver names the strongest driver for the motivo text.
func leadDriver(bias contracts.MacroBias) string {
	var lead *contracts.Driver
	for i := range bias.Drivers {
		d := &bias.Drivers[i]
		if lead == nil || abs(d.Contribution) > abs(lead.Contribution) {
			lead = d
		}
	}
	if lead == nil {
		return "sin factores disponibles"
	}
	return "liderado por " + lead.Description
}

// bucketConfidence merges the correlation strength with the bias
// confidence bucket. Ties resolve toward the lower bucket.
func bucketConfidence(corrAbs float64, biasBucket contracts.ConfidenceLevel) contracts.ConfidenceLevel {
	switch {
	case corrAbs >= 0.70:
		return contracts.ConfidenceAlta
	case corrAbs >= 0.50:
		if biasBucket == contracts.ConfidenceAlta {
			return contracts.ConfidenceAlta
		}
		return contracts.ConfidenceMedia
	default:
		if biasBucket == contracts.ConfidenceBaja {
			return contracts.ConfidenceBaja
		}
		return contracts.ConfidenceMedia
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
