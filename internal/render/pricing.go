package render

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/theirongolddev/cstat/internal/snapshot"
)

// fallbackRates holds $/MTok input/output prices per model family, used when
// the cached pricing table is unavailable or lacks the model.
var fallbackRates = map[string]struct{ in, out float64 }{
	snapshot.FamilyOpus:   {5, 25},
	snapshot.FamilySonnet: {3, 15},
	snapshot.FamilyHaiku:  {1, 5},
}

// EstimateCost prices a token total from the cached pricing table, falling
// back to the static family rates. Used when the snapshot reports no cost.
func EstimateCost(pricing []byte, modelID string, inputTokens, outputTokens int64) float64 {
	inRate, outRate := rates(pricing, modelID)
	return float64(inputTokens)*inRate/1_000_000 + float64(outputTokens)*outRate/1_000_000
}

// rates resolves $/MTok input/output prices for a model. The pricing table
// keys models either as-is or slash-separated.
func rates(pricing []byte, modelID string) (float64, float64) {
	fam := snapshot.Family(modelID)
	fb := fallbackRates[fam]

	if pricing == nil {
		return fb.in, fb.out
	}

	m := gjson.GetBytes(pricing, escapeKey(modelID))
	if !m.Exists() {
		m = gjson.GetBytes(pricing, escapeKey(strings.ReplaceAll(modelID, "-", "/")))
	}
	if !m.Exists() {
		return fb.in, fb.out
	}

	in := m.Get("input_cost_per_token").Float() * 1_000_000
	out := m.Get("output_cost_per_token").Float() * 1_000_000
	if in == 0 && out == 0 {
		return fb.in, fb.out
	}
	return in, out
}

// escapeKey quotes gjson path metacharacters inside a literal map key.
func escapeKey(k string) string {
	k = strings.ReplaceAll(k, ".", `\.`)
	k = strings.ReplaceAll(k, "*", `\*`)
	return strings.ReplaceAll(k, "?", `\?`)
}
