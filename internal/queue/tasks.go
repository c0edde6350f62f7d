package queue

// Task type constants
const (
	TypeIngestText    = "trends:ingest_text"
	TypeRefreshScores = "trends:refresh_scores"
)

// IngestTextPayload carries a text submitted for asynchronous trend
// ingestion (bulk/seed traffic that does not need the response
// snapshot).
type IngestTextPayload struct {
	JobID string `json:"job_id"`
	Text  string `json:"text"`
	// Tracing and timing fields
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	EnqueuedAt int64  `json:"enqueued_at"` // Unix timestamp in nanoseconds
}

// RefreshScoresPayload triggers a decay recomputation over the whole
// trend table.
type RefreshScoresPayload struct {
	RequestedAt int64 `json:"requested_at"` // Unix timestamp in nanoseconds
}
