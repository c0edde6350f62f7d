package models

import "time"

// POS is a part-of-speech category. The set is closed: every token the
// tokenizer emits carries exactly one of the constants below.
type POS string

const (
	POSNoun           POS = "noun"
	POSPronoun        POS = "pronoun"
	POSVerb           POS = "verb"
	POSAdjective      POS = "adjective"
	POSAdjectivalNoun POS = "adjectival-noun"
	POSAdverb         POS = "adverb"
	POSDeterminer     POS = "determiner"
	POSParticle       POS = "particle"
	POSAuxiliaryVerb  POS = "auxiliary-verb"
	POSConjunction    POS = "conjunction"
	POSInterjection   POS = "interjection"
	POSSymbol         POS = "symbol"
	POSUnknown        POS = "unknown"
)

// AllPOS lists every valid category, in declaration order.
var AllPOS = []POS{
	POSNoun, POSPronoun, POSVerb, POSAdjective, POSAdjectivalNoun,
	POSAdverb, POSDeterminer, POSParticle, POSAuxiliaryVerb,
	POSConjunction, POSInterjection, POSSymbol, POSUnknown,
}

// Valid reports whether p is one of the closed POS categories.
func (p POS) Valid() bool {
	for _, q := range AllPOS {
		if p == q {
			return true
		}
	}
	return false
}

// IsContent reports whether p is a content-bearing category, i.e. a
// candidate for trend extraction.
func (p POS) IsContent() bool {
	switch p {
	case POSNoun, POSVerb, POSAdjective, POSAdjectivalNoun:
		return true
	}
	return false
}

// Token is a single analyzed word with its POS and importance weight.
// Word is never empty; Importance is clamped to [0, 10].
type Token struct {
	Word       string  `json:"word"`
	POS        POS     `json:"pos"`
	Importance float64 `json:"importance"`
}

// Sentence is an ordered sequence of tokens in reading order.
type Sentence []Token

// AnalysisResult is the ordered sentences of one analyzed text. It is
// request-scoped and immutable once produced.
type AnalysisResult []Sentence

// Words returns every token word in reading order, across sentences.
func (r AnalysisResult) Words() []string {
	var words []string
	for _, s := range r {
		for _, t := range s {
			words = append(words, t.Word)
		}
	}
	return words
}

// TokenCount returns the total number of tokens in the result.
func (r AnalysisResult) TokenCount() int {
	n := 0
	for _, s := range r {
		n += len(s)
	}
	return n
}

// KeywordDelta is the per-keyword accumulation of one request, handed to
// the trend store as a single batch.
type KeywordDelta struct {
	Count         int     `json:"count"`
	MaxImportance float64 `json:"max_importance"`
}

// TrendRecord is one row of the trends table. Keyword is the natural
// key; CreatedAt is immutable after the first observation.
type TrendRecord struct {
	Keyword    string    `json:"keyword"`
	Count      int64     `json:"count"`
	Score      float64   `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// TrendSnapshot holds the two ranked views, each bounded to top-N.
type TrendSnapshot struct {
	Popular []TrendRecord `json:"popular"`
	Latest  []TrendRecord `json:"latest"`
}

// Analysis is the full response payload for one analyze request.
type Analysis struct {
	Result AnalysisResult `json:"result"`
	Trends TrendSnapshot  `json:"trends"`
}
