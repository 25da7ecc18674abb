package factors

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/pkg/logger"
)

// ProxySpec maps one factor to the stored series it is derived from.
// The sub-score is the relative change over the lookback, divided by
// Scale and clamped to [-1, 1]. Invert flips the sign for series where
// rising values mean a weaker reading.
type ProxySpec struct {
	Series   string
	Lookback int // calendar days
	Scale    float64
	Invert   bool
}

// DefaultProxies is the standard factor-to-series mapping. Series
// names are the symbols the ingestion job stores under, so the equity
// and dollar factors share the SPX/DXY price series with the
// correlation pipeline.
var DefaultProxies = map[contracts.FactorKey]ProxySpec{
	contracts.FactorRiskRegime:        {Series: "SPX", Lookback: 63, Scale: 0.10},
	contracts.FactorUSDBias:           {Series: "DXY", Lookback: 63, Scale: 0.05},
	contracts.FactorInflationMomentum: {Series: "CPIAUCSL", Lookback: 180, Scale: 0.02, Invert: true},
	contracts.FactorGrowthMomentum:    {Series: "INDPRO", Lookback: 180, Scale: 0.03},
	contracts.FactorExternalBalance:   {Series: "BOPGSTB", Lookback: 180, Scale: 0.15},
	contracts.FactorRatesContext:      {Series: "DGS10", Lookback: 63, Scale: 0.15, Invert: true},
}

// Deriver turns stored macro series into a BiasInputs snapshot. A
// factor whose proxy series is missing or too short stays nil, so the
// scorer degrades coverage instead of failing.
type Deriver struct {
	observations contracts.ObservationRepository
	proxies      map[contracts.FactorKey]ProxySpec
	logger       *logger.Logger
}

// NewDeriver creates a factor deriver.
func NewDeriver(observations contracts.ObservationRepository, proxies map[contracts.FactorKey]ProxySpec, log *logger.Logger) *Deriver {
	if proxies == nil {
		proxies = DefaultProxies
	}
	return &Deriver{
		observations: observations,
		proxies:      proxies,
		logger:       log,
	}
}

// Derive computes the factor snapshot at asOf.
func (d *Deriver) Derive(ctx context.Context, asOf time.Time) (*contracts.BiasInputs, error) {
	inputs := &contracts.BiasInputs{}

	for _, key := range contracts.AllFactors {
		spec, ok := d.proxies[key]
		if !ok {
			continue
		}

		value, err := d.deriveFactor(ctx, spec, asOf)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", key, err)
		}
		if value == nil {
			d.logger.WithFields(map[string]interface{}{
				"factor": string(key),
				"series": spec.Series,
			}).Warn("Factor proxy unavailable, leaving sub-score null")
			continue
		}

		switch key {
		case contracts.FactorRiskRegime:
			inputs.RiskRegime = value
		case contracts.FactorUSDBias:
			inputs.USDBias = value
		case contracts.FactorInflationMomentum:
			inputs.InflationMomentum = value
		case contracts.FactorGrowthMomentum:
			inputs.GrowthMomentum = value
		case contracts.FactorExternalBalance:
			inputs.ExternalBalance = value
		case contracts.FactorRatesContext:
			inputs.RatesContext = value
		}
	}

	return inputs, nil
}

// deriveFactor returns nil (not an error) when the series has no
// usable reading pair.
func (d *Deriver) deriveFactor(ctx context.Context, spec ProxySpec, asOf time.Time) (*float64, error) {
	from := asOf.AddDate(0, 0, -spec.Lookback-30)
	series, err := d.observations.GetSeriesSince(ctx, spec.Series, from)
	if err != nil {
		return nil, err
	}
	if series == nil || len(series.Points) < 2 {
		return nil, nil
	}

	last := series.Points[len(series.Points)-1]
	past, ok := readingAtOrBefore(series.Points, asOf.AddDate(0, 0, -spec.Lookback))
	if !ok || past.Value == 0 {
		return nil, nil
	}

	change := (last.Value - past.Value) / math.Abs(past.Value)
	score := change / spec.Scale
	if spec.Invert {
		score = -score
	}
	score = math.Max(-1, math.Min(1, score))
	return &score, nil
}

// readingAtOrBefore returns the latest observation dated at or before
// cutoff. Points are ordered ascending by date.
func readingAtOrBefore(points []contracts.Observation, cutoff time.Time) (contracts.Observation, bool) {
	for i := len(points) - 1; i >= 0; i-- {
		if !points[i].Date.After(cutoff) {
			return points[i], true
		}
	}
	return contracts.Observation{}, false
}
