package trend

import (
	"math"
	"testing"
	"time"

	"github.com/nezumi0627/trend-analysis-aI/internal/models"
)

func TestScoringInitial(t *testing.T) {
	s := NewScoring()

	// 6 runes, short-keyword bonus only: 1 * 2.0 * 1.1
	got := s.Initial("golang", models.KeywordDelta{Count: 1, MaxImportance: 2.0})
	if got != 2.2 {
		t.Errorf("Initial = %v, want 2.2", got)
	}

	if s.Initial("走る", models.KeywordDelta{Count: 1, MaxImportance: 4.0}) <= 0 {
		t.Error("Initial score of an observed keyword must be positive")
	}
}

func TestScoringKeywordBonus(t *testing.T) {
	s := NewScoring()
	delta := models.KeywordDelta{Count: 1, MaxImportance: 2.0}

	tests := []struct {
		name    string
		keyword string
		want    float64
	}{
		{"hashtag plus short", "#ai", 2.8},          // 0.3 + 0.1
		{"mention plus short", "@user", 2.6},        // 0.2 + 0.1
		{"digits plus short", "gpt4", 2.4},          // 0.1 + 0.1
		{"urgency japanese", "速報", 2.7},            // 0.25 + 0.1
		{"urgency english", "breaking", 2.7},        // 0.25 + 0.1
		{"long plain keyword", "internationalization", 2.0}, // no bonus
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Initial(tt.keyword, delta); got != tt.want {
				t.Errorf("Initial(%q) = %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestScoringUpdate(t *testing.T) {
	s := NewScoring()
	now := time.Now()
	delta := models.KeywordDelta{Count: 1, MaxImportance: 2.0}

	// fresh: 100 * 0.9 * 1.0 + 2.2
	got := s.Update("golang", 100, now, now, delta)
	if got != 92.2 {
		t.Errorf("Update fresh = %v, want 92.2", got)
	}

	// stale beyond 24h: 100 * 0.9 * 0.1 + 2.2
	got = s.Update("golang", 100, now.Add(-25*time.Hour), now, delta)
	if got != 11.2 {
		t.Errorf("Update stale = %v, want 11.2", got)
	}
}

func TestScoringRefreshDecays(t *testing.T) {
	s := NewScoring()
	now := time.Now()

	// 2h old: 100 * 0.9 * 0.9
	got := s.Refresh(100, now.Add(-2*time.Hour), now)
	if got != 81 {
		t.Errorf("Refresh = %v, want 81", got)
	}

	// even a fresh record decays on refresh
	if got := s.Refresh(100, now, now); got != 90 {
		t.Errorf("Refresh fresh = %v, want 90", got)
	}
}

func TestScoringCap(t *testing.T) {
	s := NewScoring()
	now := time.Now()
	delta := models.KeywordDelta{Count: 1000, MaxImportance: 10.0}

	got := s.Update("速報", 50000, now, now, delta)
	if got != s.MaxScore {
		t.Errorf("Update above cap = %v, want %v", got, s.MaxScore)
	}
}

func TestScoringRounding(t *testing.T) {
	s := NewScoring()

	got := s.Initial("keyword1", models.KeywordDelta{Count: 3, MaxImportance: 3.333})
	if math.Round(got*100)/100 != got {
		t.Errorf("Score %v not rounded to 2 decimal places", got)
	}
}

func TestTimeWeightMonotonic(t *testing.T) {
	ages := []time.Duration{
		30 * time.Minute,
		2 * time.Hour,
		5 * time.Hour,
		10 * time.Hour,
		20 * time.Hour,
		48 * time.Hour,
	}

	prev := 1.1
	for _, age := range ages {
		w := timeWeight(age)
		if w > 1.0 {
			t.Errorf("timeWeight(%v) = %v, must not exceed 1.0", age, w)
		}
		if w >= prev {
			t.Errorf("timeWeight(%v) = %v, expected below %v", age, w, prev)
		}
		prev = w
	}
}
