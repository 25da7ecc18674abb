package contracts

import "time"

// SignalOutcome is one closed tactical signal with its result,
// persisted for historical confidence scoring.
type SignalOutcome struct {
	Pair     string    `json:"pair"`
	Action   Action    `json:"action"`
	OpenedAt time.Time `json:"opened_at"`
	ClosedAt time.Time `json:"closed_at"`
	Success  bool      `json:"success"`
}

// HistoricalConfidence is the success-rate summary for one symbol.
// HasData is false below the minimum sample size; the zero SuccessRate
// must then not be read as "0% confidence".
type HistoricalConfidence struct {
	Symbol      string  `json:"symbol"`
	SampleSize  int     `json:"sample_size"`
	SuccessRate float64 `json:"success_rate"` // [0, 1], meaningful only when HasData
	HasData     bool    `json:"has_data"`
}

// Opportunity is one ranked entry of the opportunities radar.
type Opportunity struct {
	Pair         string  `json:"pair"`
	Score        float64 `json:"score"`
	Action       Action  `json:"action"`
	CorrTrend    string  `json:"corr_trend"` // "strengthening" | "stable" | "weakening"
	EventPenalty bool    `json:"event_penalty"`
	Motivo       string  `json:"motivo"`
}
