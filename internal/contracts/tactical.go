package contracts

import "time"

// Action is the per-pair tactical recommendation label.
type Action string

const (
	ActionBuy   Action = "Buscar compras"
	ActionSell  Action = "Buscar ventas"
	ActionRange Action = "Rango/táctico"
)

// USDRegime is the broad dollar regime read from the USD benchmark.
type USDRegime string

const (
	RegimeFuerte USDRegime = "Fuerte"
	RegimeDebil  USDRegime = "Débil"
	RegimeMixto  USDRegime = "Mixto"
)

// TacticalRow is the actionable output for one pair. It is derived
// from bias + correlation + regime on each request and never treated
// as ground truth.
type TacticalRow struct {
	Pair        string          `json:"pair"`
	Action      Action          `json:"action"`
	Confidence  ConfidenceLevel `json:"confidence"`
	Corr12M     *float64        `json:"corr_12m"`
	Corr3M      *float64        `json:"corr_3m"`
	Motivo      string          `json:"motivo"`
	GeneratedAt time.Time       `json:"generated_at"`
}
