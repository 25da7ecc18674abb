package narrative

import (
	"fmt"
	"math"
	"sort"

	"github.com/macrolens/backend/internal/contracts"
)

// maxBullets caps the driver bullets so the narrative stays scannable.
const maxBullets = 5

// Builder renders the Spanish narrative for one asset from its bias.
// Stateless; every field of the output is derived from the inputs.
type Builder struct{}

// NewBuilder creates a narrative builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build renders the narrative. The headline tone always matches the
// bias direction, and the bullets walk the strongest drivers first.
func (b *Builder) Build(asset contracts.AssetMeta, bias contracts.MacroBias, corr12 *contracts.CorrelationResult) contracts.NarrativeOutput {
	return contracts.NarrativeOutput{
		Headline:       headline(asset, bias),
		Bullets:        bullets(bias, corr12),
		ConfidenceNote: confidenceNote(bias),
	}
}

func headline(asset contracts.AssetMeta, bias contracts.MacroBias) string {
	tone := "lateral"
	switch bias.Direction {
	case contracts.DirectionLong:
		tone = "alcista"
	case contracts.DirectionShort:
		tone = "bajista"
	}
	return fmt.Sprintf("Sesgo macro %s en %s (puntuación %+.0f)", tone, asset.Name, bias.Score)
}

func bullets(bias contracts.MacroBias, corr12 *contracts.CorrelationResult) []string {
	drivers := make([]contracts.Driver, len(bias.Drivers))
	copy(drivers, bias.Drivers)
	sort.SliceStable(drivers, func(i, j int) bool {
		return math.Abs(drivers[i].Contribution) > math.Abs(drivers[j].Contribution)
	})

	out := make([]string, 0, maxBullets)
	for _, d := range drivers {
		if len(out) == maxBullets-1 {
			break
		}
		out = append(out, driverBullet(d))
	}

	if corr12 != nil && corr12.Valid() {
		out = append(out, fmt.Sprintf("Correlación 12m con %s: %+.2f sobre %d observaciones",
			corr12.Benchmark, *corr12.Value, corr12.NObs))
	}

	if len(out) < 3 {
		out = append(out, fmt.Sprintf("Cobertura de factores: %d de %d disponibles",
			bias.Meta.DriversUsed, bias.Meta.DriversTotal))
	}
	for len(out) < 3 {
		out = append(out, "Datos macro insuficientes para un sesgo direccional; esperar nuevas publicaciones")
	}
	return out
}

func driverBullet(d contracts.Driver) string {
	tone := "aporta sesgo alcista"
	if d.Contribution < 0 {
		tone = "aporta sesgo bajista"
	} else if d.Contribution == 0 {
		tone = "sin aporte direccional"
	}
	return fmt.Sprintf("%s %s (contribución %+.3f, peso %.0f%%)",
		capitalize(d.Description), tone, d.Contribution, d.Weight*100)
}

func confidenceNote(bias contracts.MacroBias) string {
	switch contracts.ConfidenceBucket(bias.Confidence) {
	case contracts.ConfidenceAlta:
		return fmt.Sprintf("Confianza alta (%.2f): cobertura de factores amplia y drivers coherentes", bias.Confidence)
	case contracts.ConfidenceMedia:
		return fmt.Sprintf("Confianza media (%.2f): señal utilizable pero con cobertura o coherencia limitadas", bias.Confidence)
	default:
		return fmt.Sprintf("Confianza baja (%.2f): tratar el sesgo como orientativo, no operativo", bias.Confidence)
	}
}

// capitalize upper-cases the first rune for bullet leads. Factor
// descriptions come from config in lowercase.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
