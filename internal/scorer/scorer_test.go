package scorer

import (
	"testing"

	"github.com/nezumi0627/trend-analysis-aI/internal/models"
)

func TestScoreBounds(t *testing.T) {
	s := New()

	for _, pos := range models.AllPOS {
		for _, freq := range []int{0, 1, 5, 100, 100000} {
			got := s.Score(pos, freq)
			if got < MinImportance || got > MaxImportance {
				t.Errorf("Score(%q, %d) = %v, out of [%v, %v]",
					pos, freq, got, MinImportance, MaxImportance)
			}
		}
	}
}

func TestScoreSymbolStaysAtFloor(t *testing.T) {
	s := New()

	// punctuation must never climb off the floor regardless of frequency
	for _, freq := range []int{1, 10, 1000} {
		if got := s.Score(models.POSSymbol, freq); got != BaseWeight(models.POSSymbol) {
			t.Errorf("Score(symbol, %d) = %v, want %v", freq, got, BaseWeight(models.POSSymbol))
		}
	}
}

func TestScoreFrequencyMonotonic(t *testing.T) {
	s := New()

	prev := 0.0
	for _, freq := range []int{1, 2, 5, 20} {
		got := s.Score(models.POSNoun, freq)
		if got <= prev {
			t.Errorf("Score(noun, %d) = %v, expected strictly above %v", freq, got, prev)
		}
		prev = got
	}
}

func TestScoreContentOutranksFunction(t *testing.T) {
	s := New()

	content := []models.POS{models.POSNoun, models.POSVerb, models.POSAdjective}
	function := []models.POS{models.POSParticle, models.POSAuxiliaryVerb, models.POSDeterminer, models.POSConjunction}

	for _, c := range content {
		for _, f := range function {
			if s.Score(c, 1) <= s.Score(f, 1) {
				t.Errorf("Score(%q) should outrank Score(%q)", c, f)
			}
		}
	}
}

func TestScoreResult(t *testing.T) {
	s := New()

	// "走る" appears twice across sentences, so it gets a frequency boost
	result := models.AnalysisResult{
		{
			{Word: "猫", POS: models.POSNoun},
			{Word: "が", POS: models.POSParticle},
			{Word: "走る", POS: models.POSVerb},
		},
		{
			{Word: "走る", POS: models.POSVerb},
		},
	}

	s.ScoreResult(result)

	for _, sentence := range result {
		for _, token := range sentence {
			if token.Importance <= 0 {
				t.Errorf("Token %q importance = %v, want > 0", token.Word, token.Importance)
			}
		}
	}

	once := s.Score(models.POSVerb, 1)
	twice := result[1][0].Importance
	if twice <= once {
		t.Errorf("Repeated word importance %v should exceed single occurrence %v", twice, once)
	}
	if result[0][2].Importance != result[1][0].Importance {
		t.Error("Same normalized word must score identically in every position")
	}
}

func TestScoreResultCaseFolding(t *testing.T) {
	s := New()

	// Python and python are the same keyword, so both count toward frequency
	result := models.AnalysisResult{
		{{Word: "Python", POS: models.POSNoun}},
		{{Word: "python", POS: models.POSNoun}},
	}

	s.ScoreResult(result)

	want := s.Score(models.POSNoun, 2)
	if result[0][0].Importance != want || result[1][0].Importance != want {
		t.Errorf("Case variants scored %v and %v, want both %v",
			result[0][0].Importance, result[1][0].Importance, want)
	}
}
