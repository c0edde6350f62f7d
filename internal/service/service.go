package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nezumi0627/trend-analysis-aI/internal/database"
	"github.com/nezumi0627/trend-analysis-aI/internal/models"
	"github.com/nezumi0627/trend-analysis-aI/internal/scorer"
	"github.com/nezumi0627/trend-analysis-aI/internal/tokenizer"
	"github.com/nezumi0627/trend-analysis-aI/internal/trend"
)

// Config carries the tunable constants of the analysis pipeline.
type Config struct {
	// MaxTextLength bounds accepted input in bytes.
	MaxTextLength int
	// Timeout bounds the whole pipeline per request.
	Timeout time.Duration
	// TopN bounds both ranked trend views.
	TopN int
	// ImportanceThreshold gates keyword candidates.
	ImportanceThreshold float64
}

// DefaultConfig returns the defaults used by the server.
func DefaultConfig() Config {
	return Config{
		MaxTextLength:       10000,
		Timeout:             10 * time.Second,
		TopN:                10,
		ImportanceThreshold: trend.DefaultImportanceThreshold,
	}
}

// Service orchestrates tokenizer -> scorer -> aggregator -> store for
// one request. Tokenizer and scorer work on request-local data only;
// the injected TrendStore is the single shared resource.
type Service struct {
	tokenizer  *tokenizer.Tokenizer
	scorer     *scorer.Scorer
	aggregator *trend.Aggregator
	store      *database.TrendStore
	cfg        Config
	logger     *slog.Logger
}

// New creates an analysis service on top of an injected trend store.
func New(store *database.TrendStore, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = DefaultConfig().MaxTextLength
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultConfig().TopN
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		tokenizer:  tokenizer.New(),
		scorer:     scorer.New(),
		aggregator: trend.NewAggregator(cfg.ImportanceThreshold),
		store:      store,
		cfg:        cfg,
		logger:     logger,
	}
}

// Analyze runs the full pipeline and returns the analyzed text together
// with fresh trend rankings. The snapshot read after the write is
// best-effort with respect to concurrent requests.
func (s *Service) Analyze(ctx context.Context, text string) (*models.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	result, err := s.analyzeText(ctx, text)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Analysis{
		Result: result,
		Trends: snapshot,
	}, nil
}

// Ingest runs the pipeline for its trend side effects only, without
// reading rankings back. Used by the queue worker for bulk ingestion.
func (s *Service) Ingest(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	_, err := s.analyzeText(ctx, text)
	return err
}

// Snapshot reads both ranked views.
func (s *Service) Snapshot(ctx context.Context) (models.TrendSnapshot, error) {
	popular, err := s.store.TopByScore(ctx, s.cfg.TopN)
	if err != nil {
		return models.TrendSnapshot{}, fmt.Errorf("failed to read popular trends: %w", err)
	}

	latest, err := s.store.TopByRecency(ctx, s.cfg.TopN)
	if err != nil {
		return models.TrendSnapshot{}, fmt.Errorf("failed to read latest trends: %w", err)
	}

	return models.TrendSnapshot{Popular: popular, Latest: latest}, nil
}

func (s *Service) analyzeText(ctx context.Context, text string) (models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if len(text) > s.cfg.MaxTextLength {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrTextTooLong, len(text), s.cfg.MaxTextLength)
	}

	result := s.tokenizer.Tokenize(text)
	if err := checkResult(result); err != nil {
		// a broken token sequence is a programming defect, not bad input
		s.logger.Error("tokenizer invariant violation", "error", err, "text_length", len(text))
		return nil, err
	}

	s.scorer.ScoreResult(result)

	deltas := s.aggregator.Ingest(result)
	if err := s.store.ApplyDeltas(ctx, deltas, time.Now()); err != nil {
		return nil, err
	}

	s.logger.Debug("analysis complete",
		"sentences", len(result),
		"tokens", result.TokenCount(),
		"keywords", len(deltas),
	)

	return result, nil
}

// checkResult verifies the tokenizer invariants: no empty tokens, only
// closed-set POS values.
func checkResult(result models.AnalysisResult) error {
	for i, sentence := range result {
		for j, token := range sentence {
			if token.Word == "" {
				return fmt.Errorf("internal: empty token at sentence %d index %d", i, j)
			}
			if !token.POS.Valid() {
				return fmt.Errorf("internal: invalid POS %q at sentence %d index %d", token.POS, i, j)
			}
		}
	}
	return nil
}
