package trend

import (
	"testing"

	"github.com/nezumi0627/trend-analysis-aI/internal/models"
)

func TestAggregatorContentFilter(t *testing.T) {
	a := NewAggregator(DefaultImportanceThreshold)

	result := models.AnalysisResult{
		{
			{Word: "猫", POS: models.POSNoun, Importance: 3.4},
			{Word: "が", POS: models.POSParticle, Importance: 0.8},
			{Word: "走る", POS: models.POSVerb, Importance: 4.2},
			{Word: "。", POS: models.POSSymbol, Importance: 0.1},
		},
	}

	deltas := a.Ingest(result)

	if len(deltas) != 2 {
		t.Fatalf("Expected 2 keywords, got %d: %v", len(deltas), deltas)
	}
	if _, ok := deltas["猫"]; !ok {
		t.Error("Expected 猫 as keyword")
	}
	if _, ok := deltas["走る"]; !ok {
		t.Error("Expected 走る as keyword")
	}
	if _, ok := deltas["が"]; ok {
		t.Error("Particle が must not become a keyword")
	}
}

func TestAggregatorThreshold(t *testing.T) {
	a := NewAggregator(2.0)

	result := models.AnalysisResult{
		{
			{Word: "dog", POS: models.POSNoun, Importance: 1.5},
			{Word: "cat", POS: models.POSNoun, Importance: 2.0},
		},
	}

	deltas := a.Ingest(result)

	if _, ok := deltas["dog"]; ok {
		t.Error("Keyword below threshold must be excluded")
	}
	if _, ok := deltas["cat"]; !ok {
		t.Error("Keyword at threshold must be included")
	}
}

func TestAggregatorCountsAndMaxImportance(t *testing.T) {
	a := NewAggregator(DefaultImportanceThreshold)

	// same verb twice with different scores: count 2, max importance wins
	result := models.AnalysisResult{
		{{Word: "走る", POS: models.POSVerb, Importance: 3.0}},
		{{Word: "走る", POS: models.POSVerb, Importance: 4.2}},
	}

	deltas := a.Ingest(result)

	d, ok := deltas["走る"]
	if !ok {
		t.Fatal("Expected 走る as keyword")
	}
	if d.Count != 2 {
		t.Errorf("Count = %d, want 2", d.Count)
	}
	if d.MaxImportance != 4.2 {
		t.Errorf("MaxImportance = %v, want 4.2", d.MaxImportance)
	}
}

func TestAggregatorNormalization(t *testing.T) {
	a := NewAggregator(DefaultImportanceThreshold)

	result := models.AnalysisResult{
		{{Word: "Python", POS: models.POSNoun, Importance: 3.0}},
		{{Word: "python", POS: models.POSNoun, Importance: 3.0}},
	}

	deltas := a.Ingest(result)

	if len(deltas) != 1 {
		t.Fatalf("Case variants must merge into one keyword, got %v", deltas)
	}
	if deltas["python"].Count != 2 {
		t.Errorf("Count = %d, want 2", deltas["python"].Count)
	}
}

func TestAggregatorInvalidThresholdFallsBack(t *testing.T) {
	a := NewAggregator(-1)

	result := models.AnalysisResult{
		{{Word: "news", POS: models.POSNoun, Importance: DefaultImportanceThreshold}},
	}

	if deltas := a.Ingest(result); len(deltas) != 1 {
		t.Errorf("Expected default threshold to apply, got %v", deltas)
	}
}

func TestAggregatorEmptyResult(t *testing.T) {
	a := NewAggregator(DefaultImportanceThreshold)

	if deltas := a.Ingest(nil); len(deltas) != 0 {
		t.Errorf("Expected no deltas for empty result, got %v", deltas)
	}
}
