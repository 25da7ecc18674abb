package contracts

// AssetClass selects the weight/sign table used by the bias scorer.
// FX pairs are split by which leg is USD because the same factor can
// be bullish for one group and bearish for the other.
type AssetClass string

const (
	ClassFXUSDQuote AssetClass = "fx_usd_quote" // EUR/USD, GBP/USD, AUD/USD
	ClassFXUSDBase  AssetClass = "fx_usd_base"  // USD/JPY, USD/CHF
	ClassCommodity  AssetClass = "commodity"    // XAU/USD, WTI
	ClassIndex      AssetClass = "index"        // SPX, NDX
)

// USDLeg identifies which side of a pair is USD, if any.
type USDLeg string

const (
	USDQuote USDLeg = "quote"
	USDBase  USDLeg = "base"
	USDNone  USDLeg = "none"
)

// AssetMeta describes one tradable asset of the universe.
type AssetMeta struct {
	Symbol    string     `json:"symbol" yaml:"symbol"`       // e.g. "EURUSD"
	Name      string     `json:"name" yaml:"name"`           // e.g. "EUR/USD"
	Class     AssetClass `json:"class" yaml:"class"`
	Base      string     `json:"base" yaml:"base"`           // base currency/underlying
	Quote     string     `json:"quote" yaml:"quote"`         // quote currency
	Benchmark string     `json:"benchmark" yaml:"benchmark"` // correlation benchmark, e.g. "DXY"
}

// USDLeg reports which leg of the pair is USD.
func (a AssetMeta) USDLeg() USDLeg {
	switch {
	case a.Quote == "USD":
		return USDQuote
	case a.Base == "USD":
		return USDBase
	default:
		return USDNone
	}
}

// Currencies returns the currencies a calendar event can touch for
// this asset, skipping non-currency underlyings.
func (a AssetMeta) Currencies() []string {
	currencies := make([]string, 0, 2)
	if isCurrency(a.Base) {
		currencies = append(currencies, a.Base)
	}
	if isCurrency(a.Quote) {
		currencies = append(currencies, a.Quote)
	}
	return currencies
}

func isCurrency(code string) bool {
	switch code {
	case "USD", "EUR", "GBP", "JPY", "CHF", "AUD", "NZD", "CAD", "CNY", "MXN":
		return true
	default:
		return false
	}
}
