package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/nezumi0627/trend-analysis-aI/internal/models"
)

// Tokenizer splits raw mixed Japanese/English text into sentences and
// POS-tagged tokens. Tokenize is total and deterministic: the same
// input always produces the same token sequence, and no non-whitespace
// character of the preprocessed text is ever dropped.
type Tokenizer struct{}

// New creates a new Tokenizer.
func New() *Tokenizer {
	return &Tokenizer{}
}

var (
	spaceRuns   = regexp.MustCompile(`[ ]+`)
	newlineRuns = regexp.MustCompile(`[ ]*\n[\n ]*`)
)

// Preprocess normalizes text before tokenization: full-width
// alphanumerics and punctuation are folded to their half-width forms,
// control characters become whitespace, and whitespace runs collapse.
// Line breaks are kept as sentence boundaries.
func Preprocess(text string) string {
	if text == "" {
		return ""
	}

	text = width.Fold.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune('\n')
		case unicode.IsControl(r) || unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	out := newlineRuns.ReplaceAllString(b.String(), "\n")
	out = spaceRuns.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Tokenize analyzes text into ordered sentences of POS-tagged tokens.
// Importance is left at zero; the scorer fills it in. Empty input
// yields an empty result, never an error.
func (t *Tokenizer) Tokenize(text string) models.AnalysisResult {
	text = Preprocess(text)
	if text == "" {
		return nil
	}

	var result models.AnalysisResult
	for _, sentence := range SplitSentences(text) {
		tokens := t.tokenizeSentence(sentence)
		if len(tokens) > 0 {
			result = append(result, tokens)
		}
	}
	return result
}

// SplitSentences splits text at Japanese and Latin sentence-final
// punctuation and at line breaks. A trailing unterminated fragment is
// its own sentence. Terminators stay attached to their sentence so no
// characters are lost.
func SplitSentences(text string) []string {
	var sentences []string
	var cur []rune

	flush := func() {
		s := strings.TrimSpace(string(cur))
		if s != "" {
			sentences = append(sentences, s)
		}
		cur = cur[:0]
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			flush()
			continue
		}
		cur = append(cur, r)
		if !isSentenceEnd(r) {
			continue
		}
		// a period between digits is a decimal point, not a boundary
		if r == '.' && i > 0 && i+1 < len(runes) &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}
		// absorb runs of terminators ("!?", "。。")
		for i+1 < len(runes) && isSentenceEnd(runes[i+1]) {
			i++
			cur = append(cur, runes[i])
		}
		flush()
	}
	flush()

	return sentences
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '。', '．', '！', '？', '.', '!', '?':
		return true
	}
	return false
}

// script classes for run splitting
type scriptClass int

const (
	classNone scriptClass = iota
	classJapanese
	classLatin
	classDigit
	classSymbol
)

func classifyRune(r rune) scriptClass {
	switch {
	case unicode.IsSpace(r):
		return classNone
	case isJapanese(r):
		return classJapanese
	case unicode.IsLetter(r):
		return classLatin
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classSymbol
	}
}

func isJapanese(r rune) bool {
	switch {
	case unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han):
		return true
	case r == 'ー' || r == '々' || r == '〆' || r == 'ヶ':
		return true
	}
	return false
}

func isHiragana(r rune) bool {
	return unicode.In(r, unicode.Hiragana)
}

// tokenizeSentence splits one sentence into maximal same-script runs
// and tags each resulting token. Adjacent runs are never merged across
// a script boundary.
func (t *Tokenizer) tokenizeSentence(sentence string) models.Sentence {
	var tokens models.Sentence
	var run []rune
	runClass := classNone

	flush := func() {
		if len(run) == 0 {
			return
		}
		switch runClass {
		case classJapanese:
			tokens = append(tokens, segmentJapanese(run)...)
		case classLatin:
			word := string(run)
			tokens = append(tokens, models.Token{Word: word, POS: classifyLatin(word)})
		case classDigit:
			tokens = append(tokens, models.Token{Word: string(run), POS: models.POSUnknown})
		case classSymbol:
			tokens = append(tokens, models.Token{Word: string(run), POS: models.POSSymbol})
		}
		run = run[:0]
	}

	for _, r := range sentence {
		c := classifyRune(r)
		if c == classNone {
			flush()
			runClass = classNone
			continue
		}
		if c != runClass {
			flush()
			runClass = c
		}
		run = append(run, r)
	}
	flush()

	return tokens
}

// segmentJapanese splits a Japanese script run with longest-match
// lexicon lookup. Spans between lexicon hits are kept whole (kanji stem
// plus okurigana) and classified by their final rune; unresolved
// content defaults to noun.
func segmentJapanese(run []rune) []models.Token {
	var tokens []models.Token

	for i := 0; i < len(run); {
		if word, pos, n := matchJapaneseLexicon(run[i:]); n > 0 {
			tokens = append(tokens, models.Token{Word: word, POS: pos})
			i += n
			continue
		}

		// content span: consume until the next lexicon hit
		j := i + 1
		for j < len(run) {
			if _, _, n := matchJapaneseLexicon(run[j:]); n > 0 {
				break
			}
			j++
		}
		span := run[i:j]
		tokens = append(tokens, models.Token{
			Word: string(span),
			POS:  classifyJapaneseContent(span),
		})
		i = j
	}

	return tokens
}

// matchJapaneseLexicon returns the longest lexicon entry prefixing rs,
// with lexicon priority breaking length ties.
func matchJapaneseLexicon(rs []rune) (string, models.POS, int) {
	s := string(rs)
	bestLen := 0
	var bestWord string
	var bestPOS models.POS

	for _, lex := range jpLexicons {
		for _, w := range lex.words {
			if len(w) <= len(bestWord) && bestLen > 0 {
				continue
			}
			if strings.HasPrefix(s, w) {
				n := len([]rune(w))
				if n > bestLen {
					bestLen = n
					bestWord = w
					bestPOS = lex.pos
				}
			}
		}
	}

	return bestWord, bestPOS, bestLen
}

func classifyJapaneseContent(span []rune) models.POS {
	last := span[len(span)-1]
	if isHiragana(last) {
		if jpVerbEndings[last] {
			return models.POSVerb
		}
		if last == 'い' && len(span) > 1 {
			return models.POSAdjective
		}
	}
	return models.POSNoun
}

// classifyLatin tags a Latin-letter run: function-word lexicons first,
// then derivational suffixes, then the proper-noun capitalization rule.
// Anything else is unknown.
func classifyLatin(word string) models.POS {
	lower := strings.ToLower(word)
	for _, lex := range enLexicons {
		if lex.words[lower] {
			return lex.pos
		}
	}

	switch {
	case hasAnySuffix(lower, "tion", "sion", "ness", "ment", "ity", "ance", "ence", "ship"):
		return models.POSNoun
	case strings.HasSuffix(lower, "ly") && len(lower) > 3:
		return models.POSAdverb
	case hasAnySuffix(lower, "ful", "ous", "ive", "able", "ible"):
		return models.POSAdjective
	case hasAnySuffix(lower, "ize", "ise", "ify"):
		return models.POSVerb
	}

	if r := []rune(word)[0]; unicode.IsUpper(r) {
		return models.POSNoun
	}
	return models.POSUnknown
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) && len(s) > len(suf) {
			return true
		}
	}
	return false
}

// NormalizeWord folds a token word to its keyword form: Unicode
// lower-casing for Latin and a trailing symbol trim. No stemming.
func NormalizeWord(word string) string {
	w := strings.ToLower(word)
	return strings.TrimRightFunc(w, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
