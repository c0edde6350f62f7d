package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/nezumi0627/trend-analysis-aI/internal/models"
	"github.com/nezumi0627/trend-analysis-aI/internal/trend"
)

var (
	// ErrConflict is returned when a per-keyword update still hits lock
	// contention after the retry budget is spent. The caller may retry
	// the whole request.
	ErrConflict = errors.New("trend update conflict")

	// ErrNotFound is returned when a keyword has no trend record.
	ErrNotFound = errors.New("trend not found")
)

const (
	defaultMaxAttempts = 3
	backoffBase        = 5 * time.Millisecond
)

// TrendStore is the durable, concurrently-accessible trend table. Each
// keyword is applied in its own deferred transaction: no lock is taken
// until the first write, and contention on the same keyword is resolved
// by bounded retries with randomized backoff.
type TrendStore struct {
	db          *DB
	scoring     *trend.Scoring
	maxAttempts int
}

// NewTrendStore creates a TrendStore on top of an open database.
func NewTrendStore(db *DB, scoring *trend.Scoring) *TrendStore {
	return &TrendStore{
		db:          db,
		scoring:     scoring,
		maxAttempts: defaultMaxAttempts,
	}
}

// ApplyDeltas applies one request's keyword batch. Each keyword is
// all-or-nothing; a mid-batch failure leaves earlier keywords applied
// and later ones untouched, and is reported, never swallowed. Keywords
// are applied in sorted order so concurrent batches contend in a
// stable sequence.
func (s *TrendStore) ApplyDeltas(ctx context.Context, deltas map[string]models.KeywordDelta, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(deltas))
	for k := range deltas {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	for _, keyword := range keywords {
		if err := s.applyWithRetry(ctx, keyword, deltas[keyword], now); err != nil {
			return fmt.Errorf("failed to apply delta for %q: %w", keyword, err)
		}
	}

	return nil
}

func (s *TrendStore) applyWithRetry(ctx context.Context, keyword string, delta models.KeywordDelta, now time.Time) error {
	var err error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 {
			// small randomized backoff before re-contending
			backoff := backoffBase + time.Duration(rand.Int63n(int64(backoffBase)*4))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err = s.applyOne(ctx, keyword, delta, now)
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			return err
		}
	}

	return fmt.Errorf("%w: %v", ErrConflict, err)
}

// applyOne runs one read-modify-write in a deferred transaction. The
// write lock is acquired at the INSERT/UPDATE, not at BEGIN.
func (s *TrendStore) applyOne(ctx context.Context, keyword string, delta models.KeywordDelta, now time.Time) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		count    int64
		score    float64
		lastSeen time.Time
	)
	err = tx.QueryRowContext(ctx, `
		SELECT count, score, last_seen_at
		FROM trends
		WHERE keyword = ?
	`, keyword).Scan(&count, &score, &lastSeen)

	switch {
	case err == sql.ErrNoRows:
		initial := s.scoring.Initial(keyword, delta)
		_, err = tx.ExecContext(ctx, `
			INSERT INTO trends (keyword, count, score, created_at, last_seen_at)
			VALUES (?, ?, ?, ?, ?)
		`, keyword, delta.Count, initial, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert trend: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read trend: %w", err)
	default:
		newCount := count + int64(delta.Count)
		newScore := s.scoring.Update(keyword, score, lastSeen, now, delta)
		_, err = tx.ExecContext(ctx, `
			UPDATE trends
			SET count = ?, score = ?, last_seen_at = ?
			WHERE keyword = ?
		`, newCount, newScore, now, keyword)
		if err != nil {
			return fmt.Errorf("failed to update trend: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trend update: %w", err)
	}

	return nil
}

// TopByScore returns up to n records ordered by score descending, ties
// broken by count descending, then created_at ascending (earlier
// discovery wins).
func (s *TrendStore) TopByScore(ctx context.Context, n int) ([]models.TrendRecord, error) {
	return s.queryTrends(ctx, `
		SELECT keyword, count, score, created_at, last_seen_at
		FROM trends
		ORDER BY score DESC, count DESC, created_at ASC
		LIMIT ?
	`, n)
}

// TopByRecency returns up to n records ordered by last_seen_at
// descending, ties broken by created_at descending.
func (s *TrendStore) TopByRecency(ctx context.Context, n int) ([]models.TrendRecord, error) {
	return s.queryTrends(ctx, `
		SELECT keyword, count, score, created_at, last_seen_at
		FROM trends
		ORDER BY last_seen_at DESC, created_at DESC
		LIMIT ?
	`, n)
}

func (s *TrendStore) queryTrends(ctx context.Context, query string, n int) ([]models.TrendRecord, error) {
	rows, err := s.db.conn.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query trends: %w", err)
	}
	defer rows.Close()

	var records []models.TrendRecord
	for rows.Next() {
		var r models.TrendRecord
		if err := rows.Scan(&r.Keyword, &r.Count, &r.Score, &r.CreatedAt, &r.LastSeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Get retrieves a single trend record by keyword.
func (s *TrendStore) Get(ctx context.Context, keyword string) (*models.TrendRecord, error) {
	var r models.TrendRecord
	err := s.db.conn.QueryRowContext(ctx, `
		SELECT keyword, count, score, created_at, last_seen_at
		FROM trends
		WHERE keyword = ?
	`, keyword).Scan(&r.Keyword, &r.Count, &r.Score, &r.CreatedAt, &r.LastSeenAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trend: %w", err)
	}

	return &r, nil
}

// RefreshScores recomputes every score with the decay applied to its
// age, so keywords with no new observations sink over time. Runs in a
// single transaction.
func (s *TrendStore) RefreshScores(ctx context.Context, now time.Time) (int, error) {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT keyword, score, last_seen_at FROM trends`)
	if err != nil {
		return 0, fmt.Errorf("failed to read trends for refresh: %w", err)
	}

	type rescore struct {
		keyword string
		score   float64
	}
	var updates []rescore
	for rows.Next() {
		var (
			keyword  string
			score    float64
			lastSeen time.Time
		)
		if err := rows.Scan(&keyword, &score, &lastSeen); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan trend row: %w", err)
		}
		refreshed := s.scoring.Refresh(score, lastSeen, now)
		if refreshed != score {
			updates = append(updates, rescore{keyword: keyword, score: refreshed})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	for _, u := range updates {
		if _, err := tx.ExecContext(ctx, `UPDATE trends SET score = ? WHERE keyword = ?`, u.score, u.keyword); err != nil {
			return 0, fmt.Errorf("failed to refresh score for %q: %w", u.keyword, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit score refresh: %w", err)
	}

	return len(updates), nil
}

// isLockError reports whether err is SQLite writer contention.
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
