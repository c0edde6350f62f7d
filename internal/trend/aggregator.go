package trend

import (
	"github.com/nezumi0627/trend-analysis-aI/internal/models"
	"github.com/nezumi0627/trend-analysis-aI/internal/tokenizer"
)

// DefaultImportanceThreshold is the minimum importance a token needs to
// become a keyword candidate.
const DefaultImportanceThreshold = 1.0

// Aggregator selects keyword candidates from a scored analysis result
// and folds them into one delta batch per request. It is pure: the
// deltas are handed to the store in a single call, one round trip per
// keyword no matter how often the word repeats in the request.
type Aggregator struct {
	threshold float64
}

// NewAggregator creates an Aggregator with the given importance
// threshold; values <= 0 fall back to the default.
func NewAggregator(threshold float64) *Aggregator {
	if threshold <= 0 {
		threshold = DefaultImportanceThreshold
	}
	return &Aggregator{threshold: threshold}
}

// Ingest walks a scored result and accumulates per-keyword deltas.
// Candidates are content-bearing tokens (noun, verb, adjective,
// adjectival-noun) at or above the importance threshold; surface
// variants merge through normalization (case folding, trailing symbol
// trim, no stemming).
func (a *Aggregator) Ingest(result models.AnalysisResult) map[string]models.KeywordDelta {
	deltas := make(map[string]models.KeywordDelta)

	for _, sentence := range result {
		for _, token := range sentence {
			if !token.POS.IsContent() {
				continue
			}
			if token.Importance < a.threshold {
				continue
			}

			keyword := tokenizer.NormalizeWord(token.Word)
			if keyword == "" {
				continue
			}

			d := deltas[keyword]
			d.Count++
			if token.Importance > d.MaxImportance {
				d.MaxImportance = token.Importance
			}
			deltas[keyword] = d
		}
	}

	return deltas
}
