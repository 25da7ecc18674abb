package weights

import (
	"github.com/macrolens/backend/internal/contracts"
)

// FactorWeight is the weight, direction and display text of one macro
// factor for one asset class.
type FactorWeight struct {
	Weight      float64 `yaml:"weight" json:"weight"`
	Sign        float64 `yaml:"sign" json:"sign"` // +1 bullish, -1 bearish for the class
	Description string  `yaml:"description" json:"description"`
}

// ClassWeights maps factor keys to their weight for one asset class.
// Weights of a class always sum to 1.0; validated at load time, not at
// runtime, since a bad table is a deployment error.
type ClassWeights map[contracts.FactorKey]FactorWeight

// Table is the versioned weight configuration for all asset classes.
type Table struct {
	Version string                                `yaml:"version" json:"version"`
	Classes map[contracts.AssetClass]ClassWeights `yaml:"classes" json:"classes"`
}

// ForClass returns the weights for an asset class.
func (t *Table) ForClass(class contracts.AssetClass) (ClassWeights, bool) {
	cw, ok := t.Classes[class]
	return cw, ok
}

// Universe is the versioned asset universe.
type Universe struct {
	Version string                `yaml:"version" json:"version"`
	Assets  []contracts.AssetMeta `yaml:"assets" json:"assets"`

	bySymbol map[string]contracts.AssetMeta
}

// Get returns the asset metadata for a symbol.
func (u *Universe) Get(symbol string) (contracts.AssetMeta, bool) {
	if u.bySymbol == nil {
		u.index()
	}
	asset, ok := u.bySymbol[symbol]
	return asset, ok
}

// Symbols returns the universe symbols in configuration order.
func (u *Universe) Symbols() []string {
	symbols := make([]string, 0, len(u.Assets))
	for _, a := range u.Assets {
		symbols = append(symbols, a.Symbol)
	}
	return symbols
}

func (u *Universe) index() {
	u.bySymbol = make(map[string]contracts.AssetMeta, len(u.Assets))
	for _, a := range u.Assets {
		u.bySymbol[a.Symbol] = a
	}
}
