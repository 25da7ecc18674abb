package contracts

import "time"

// Window identifies a rolling correlation window.
type Window string

const (
	Window3M  Window = "3m"
	Window6M  Window = "6m"
	Window12M Window = "12m"
	Window24M Window = "24m"
)

// AllWindows lists the windows recomputed by the correlation job.
var AllWindows = []Window{Window3M, Window6M, Window12M, Window24M}

// Size returns the nominal sample count and the minimum number of
// aligned observations required before a value is reported.
func (w Window) Size() (size, minObs int) {
	switch w {
	case Window3M:
		return 63, 40
	case Window6M:
		return 126, 80
	case Window12M:
		return 252, 150
	case Window24M:
		return 504, 300
	default:
		return 0, 0
	}
}

// CorrelationStatus tells callers why a value may be missing, so a null
// correlation is never confused with zero correlation.
type CorrelationStatus string

const (
	StatusOK               CorrelationStatus = "ok"
	StatusInsufficientData CorrelationStatus = "insufficient_data"
	StatusStale            CorrelationStatus = "stale"
)

// CorrelationResult is the persisted output of the correlation
// calculator for one (symbol, benchmark, window, asof) key.
type CorrelationResult struct {
	Symbol    string            `json:"symbol"`
	Benchmark string            `json:"benchmark"`
	Window    Window            `json:"window"`
	Value     *float64          `json:"value"` // nil when status != ok
	NObs      int               `json:"n_obs"`
	AsOf      time.Time         `json:"asof"`
	Status    CorrelationStatus `json:"status"`
	LastDate  *time.Time        `json:"last_date,omitempty"` // set when stale
}

// Valid reports whether the result carries a usable value.
func (r *CorrelationResult) Valid() bool {
	return r.Status == StatusOK && r.Value != nil
}

// Abs returns |value|, or 0 when the result carries no value.
func (r *CorrelationResult) Abs() float64 {
	if r.Value == nil {
		return 0
	}
	if *r.Value < 0 {
		return -*r.Value
	}
	return *r.Value
}
