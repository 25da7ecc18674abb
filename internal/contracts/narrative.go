package contracts

// NarrativeOutput is the rendered narrative for one asset. Pure
// function of MacroBias + AssetMeta, no hidden state.
type NarrativeOutput struct {
	Headline       string   `json:"headline"`
	Bullets        []string `json:"bullets"` // 3 to 5 entries
	ConfidenceNote string   `json:"confidence_note"`
}
