package service

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nezumi0627/trend-analysis-aI/internal/database"
	"github.com/nezumi0627/trend-analysis-aI/internal/models"
	"github.com/nezumi0627/trend-analysis-aI/internal/trend"
)

func setupTestService(t *testing.T, cfg Config) *Service {
	t.Helper()

	path := filepath.Join(t.TempDir(), "service_test.db")
	db, err := database.New(path)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	store := database.NewTrendStore(db, trend.NewScoring())
	return New(store, cfg, slog.Default())
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	svc := setupTestService(t, DefaultConfig())

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := svc.Analyze(context.Background(), text)
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("Analyze(%q) = %v, want ErrEmptyText", text, err)
		}
	}
}

func TestAnalyzeRejectsTooLongText(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTextLength = 10
	svc := setupTestService(t, cfg)

	_, err := svc.Analyze(context.Background(), strings.Repeat("a", 11))
	if !errors.Is(err, ErrTextTooLong) {
		t.Errorf("Analyze = %v, want ErrTextTooLong", err)
	}
	if !IsValidation(err) {
		t.Error("ErrTextTooLong must classify as validation error")
	}

	// input at the limit passes validation
	if _, err := svc.Analyze(context.Background(), strings.Repeat("a", 10)); err != nil {
		t.Errorf("Analyze at limit failed: %v", err)
	}
}

func TestAnalyzeJapanese(t *testing.T) {
	svc := setupTestService(t, DefaultConfig())

	analysis, err := svc.Analyze(context.Background(), "猫が走る。犬も走る。")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(analysis.Result) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(analysis.Result))
	}

	// token order must mirror reading order
	words := analysis.Result.Words()
	expected := []string{"猫", "が", "走る", "。", "犬", "も", "走る", "。"}
	if len(words) != len(expected) {
		t.Fatalf("Words = %v, want %v", words, expected)
	}
	for i := range expected {
		if words[i] != expected[i] {
			t.Errorf("Word %d = %q, want %q", i, words[i], expected[i])
		}
	}

	// 走る appears in both sentences: one trend record with count 2
	var running *models.TrendRecord
	for i := range analysis.Trends.Popular {
		if analysis.Trends.Popular[i].Keyword == "走る" {
			running = &analysis.Trends.Popular[i]
		}
	}
	if running == nil {
		t.Fatalf("Expected 走る in popular trends, got %v", analysis.Trends.Popular)
	}
	if running.Count != 2 {
		t.Errorf("走る count = %d, want 2", running.Count)
	}

	// the particles never become trends
	for _, r := range analysis.Trends.Popular {
		if r.Keyword == "が" || r.Keyword == "も" {
			t.Errorf("Function word %q must not be a trend", r.Keyword)
		}
	}
}

func TestAnalyzeRepeatedKeyword(t *testing.T) {
	svc := setupTestService(t, DefaultConfig())
	ctx := context.Background()

	first, err := svc.Analyze(ctx, "Python is great")
	if err != nil {
		t.Fatalf("First analyze failed: %v", err)
	}
	var createdAt int64
	for _, r := range first.Trends.Popular {
		if r.Keyword == "python" {
			createdAt = r.CreatedAt.UnixNano()
		}
	}
	if createdAt == 0 {
		t.Fatalf("Expected python in trends after first analyze, got %v", first.Trends.Popular)
	}

	second, err := svc.Analyze(ctx, "Python is great")
	if err != nil {
		t.Fatalf("Second analyze failed: %v", err)
	}

	var python *models.TrendRecord
	for i := range second.Trends.Popular {
		if second.Trends.Popular[i].Keyword == "python" {
			python = &second.Trends.Popular[i]
		}
	}
	if python == nil {
		t.Fatalf("Expected python in trends after second analyze")
	}
	if python.Count != 2 {
		t.Errorf("Count = %d, want 2", python.Count)
	}
	if python.CreatedAt.UnixNano() != createdAt {
		t.Errorf("CreatedAt changed across observations")
	}
	if python.Score <= 0 {
		t.Errorf("Score = %v, want > 0", python.Score)
	}
}

func TestAnalyzeImportanceBounds(t *testing.T) {
	svc := setupTestService(t, DefaultConfig())

	analysis, err := svc.Analyze(context.Background(), "速報です！サーバーがダウン。Breaking news now!")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for _, sentence := range analysis.Result {
		for _, token := range sentence {
			if token.Word == "" {
				t.Error("Empty token in result")
			}
			if !token.POS.Valid() {
				t.Errorf("Invalid POS %q for token %q", token.POS, token.Word)
			}
			if token.Importance < 0 || token.Importance > 10 {
				t.Errorf("Importance %v for token %q out of [0, 10]", token.Importance, token.Word)
			}
		}
	}
}

func TestIngestSideEffectsOnly(t *testing.T) {
	svc := setupTestService(t, DefaultConfig())
	ctx := context.Background()

	if err := svc.Ingest(ctx, "猫が走る。"); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	snapshot, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snapshot.Popular) == 0 {
		t.Error("Expected trends after ingest")
	}
}

func TestSnapshotTopN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopN = 2
	svc := setupTestService(t, cfg)
	ctx := context.Background()

	texts := []string{"猫が走る。", "犬が吠える。", "鳥が飛ぶ。"}
	for _, text := range texts {
		if err := svc.Ingest(ctx, text); err != nil {
			t.Fatalf("Ingest(%q) failed: %v", text, err)
		}
	}

	snapshot, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snapshot.Popular) > 2 {
		t.Errorf("Popular has %d records, want at most 2", len(snapshot.Popular))
	}
	if len(snapshot.Latest) > 2 {
		t.Errorf("Latest has %d records, want at most 2", len(snapshot.Latest))
	}
}
