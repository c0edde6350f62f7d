package trend

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nezumi0627/trend-analysis-aI/internal/models"
)

// Scoring computes the recency-weighted running score of a trend
// record. Newer observations count more than stale ones: the previous
// score contributes through a decay factor and a time-weight bucket, so
// historical volume alone cannot keep a keyword on top.
type Scoring struct {
	// Decay scales the previous score on every update.
	Decay float64
	// MaxScore caps the running score.
	MaxScore float64
}

// NewScoring returns a Scoring with the default constants.
func NewScoring() *Scoring {
	return &Scoring{
		Decay:    0.9,
		MaxScore: 10000,
	}
}

var (
	digitPattern   = regexp.MustCompile(`\d`)
	urgencyPattern = regexp.MustCompile(`(速報|breaking|urgent)`)
)

// Initial computes the score of a keyword observed for the first time
// (freshness 1.0).
func (s *Scoring) Initial(keyword string, delta models.KeywordDelta) float64 {
	return s.finish(s.contribution(keyword, delta))
}

// Update recomputes the score of an existing record: the decayed,
// recency-weighted previous score plus the contribution of the new
// observation batch.
func (s *Scoring) Update(keyword string, prevScore float64, lastSeen, now time.Time, delta models.KeywordDelta) float64 {
	carried := prevScore * s.Decay * timeWeight(now.Sub(lastSeen))
	return s.finish(carried + s.contribution(keyword, delta))
}

// Refresh recomputes a score with no new observation, letting stale
// records sink over time.
func (s *Scoring) Refresh(prevScore float64, lastSeen, now time.Time) float64 {
	return s.finish(prevScore * s.Decay * timeWeight(now.Sub(lastSeen)))
}

func (s *Scoring) contribution(keyword string, delta models.KeywordDelta) float64 {
	return float64(delta.Count) * delta.MaxImportance * (1 + keywordBonus(keyword))
}

func (s *Scoring) finish(raw float64) float64 {
	if raw < 0 {
		return 0
	}
	if raw > s.MaxScore {
		raw = s.MaxScore
	}
	return math.Round(raw*100) / 100
}

// timeWeight buckets the age of the previous observation. At most 1.0:
// the carried score never grows from sitting idle.
func timeWeight(age time.Duration) float64 {
	switch {
	case age <= time.Hour:
		return 1.0
	case age <= 3*time.Hour:
		return 0.9
	case age <= 6*time.Hour:
		return 0.7
	case age <= 12*time.Hour:
		return 0.5
	case age <= 24*time.Hour:
		return 0.3
	default:
		return 0.1
	}
}

// keywordBonus rewards keyword shapes that historically correlate with
// trends: hashtags, mentions, digits, short keywords and urgency words.
// Bounded to 1.0.
func keywordBonus(keyword string) float64 {
	bonus := 0.0
	lower := strings.ToLower(keyword)

	if strings.Contains(keyword, "#") {
		bonus += 0.3
	}
	if strings.Contains(keyword, "@") {
		bonus += 0.2
	}
	if digitPattern.MatchString(keyword) {
		bonus += 0.1
	}
	if utf8.RuneCountInString(keyword) <= 10 {
		bonus += 0.1
	}
	if urgencyPattern.MatchString(lower) {
		bonus += 0.25
	}

	if bonus > 1.0 {
		bonus = 1.0
	}
	return bonus
}
