package contracts

import (
	"math"
	"time"
)

// Frequency is the publication cadence of a series. It selects the
// freshness SLA applied by the invariants checker.
type Frequency string

const (
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
)

// Observation is one sample of a price or macro series.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// IsFinite reports whether the observation carries a usable value.
func (o Observation) IsFinite() bool {
	return !math.IsNaN(o.Value) && !math.IsInf(o.Value, 0)
}

// Series is an ordered sequence of observations for one symbol,
// deduplicated by date by the source.
type Series struct {
	Symbol    string        `json:"symbol"`
	Frequency Frequency     `json:"frequency"`
	Points    []Observation `json:"points"`
}

// LastDate returns the most recent observation date, or zero when empty.
func (s *Series) LastDate() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}

// AlignedPoint is one sample of a date-aligned asset/benchmark pair.
type AlignedPoint struct {
	Date      time.Time
	Asset     float64
	Benchmark float64
}
