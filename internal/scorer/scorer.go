package scorer

import (
	"math"

	"github.com/nezumi0627/trend-analysis-aI/internal/models"
	"github.com/nezumi0627/trend-analysis-aI/internal/tokenizer"
)

// Importance bounds. Every scored token lands inside [MinImportance,
// MaxImportance].
const (
	MinImportance = 0.0
	MaxImportance = 10.0
)

// baseWeights are the fixed per-POS constants. Content-bearing
// categories sit well above the function categories; symbols stay at
// the floor.
var baseWeights = map[models.POS]float64{
	models.POSNoun:           2.0,
	models.POSVerb:           2.0,
	models.POSAdjective:      2.0,
	models.POSAdjectivalNoun: 1.8,
	models.POSAdverb:         1.5,
	models.POSPronoun:        1.0,
	models.POSInterjection:   1.0,
	models.POSUnknown:        0.8,
	models.POSDeterminer:     0.5,
	models.POSParticle:       0.5,
	models.POSAuxiliaryVerb:  0.5,
	models.POSConjunction:    0.5,
	models.POSSymbol:         0.1,
}

// Scorer computes token importance from POS and local word frequency.
type Scorer struct{}

// New creates a new Scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score computes the importance of a single token given the number of
// times its normalized word occurs in the current analysis result.
// Symbols are exempt from the frequency boost so punctuation can never
// climb off the floor.
func (s *Scorer) Score(pos models.POS, localFrequency int) float64 {
	base := baseWeights[pos]
	if pos == models.POSSymbol {
		return base
	}
	if localFrequency < 1 {
		localFrequency = 1
	}

	importance := base * (1 + math.Log(1+float64(localFrequency)))
	return clamp(importance)
}

// ScoreResult fills in the importance of every token in place. Local
// frequencies are counted over normalized words across the whole
// result, so repeated keywords gain weight regardless of sentence.
func (s *Scorer) ScoreResult(result models.AnalysisResult) {
	freq := make(map[string]int)
	for _, sentence := range result {
		for _, token := range sentence {
			freq[tokenizer.NormalizeWord(token.Word)]++
		}
	}

	for _, sentence := range result {
		for i := range sentence {
			token := &sentence[i]
			token.Importance = s.Score(token.POS, freq[tokenizer.NormalizeWord(token.Word)])
		}
	}
}

// BaseWeight exposes the fixed per-POS constant.
func BaseWeight(pos models.POS) float64 {
	return baseWeights[pos]
}

func clamp(v float64) float64 {
	if v < MinImportance {
		return MinImportance
	}
	if v > MaxImportance {
		return MaxImportance
	}
	return v
}
