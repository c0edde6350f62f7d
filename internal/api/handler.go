package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nezumi0627/trend-analysis-aI/internal/service"
	"github.com/nezumi0627/trend-analysis-aI/pkg/tracing"
)

// QueueClient enqueues texts for asynchronous trend ingestion.
type QueueClient interface {
	EnqueueIngestText(ctx context.Context, text string) (jobID, taskID string, err error)
}

// Handler handles HTTP requests
type Handler struct {
	svc    *service.Service
	queue  QueueClient
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewHandler creates a new API handler with CORS support and metrics.
// queue may be nil when asynchronous ingestion is disabled.
func NewHandler(svc *service.Service, queue QueueClient, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		svc:    svc,
		queue:  queue,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	h.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(h.mux)
}

// setupRoutes configures all API routes
func (h *Handler) setupRoutes() {
	h.mux.Handle("/metrics", promhttp.Handler())
	h.mux.HandleFunc("/api/analyze", h.handleAnalyze)
	h.mux.HandleFunc("/api/ingest", h.handleIngest)
	h.mux.HandleFunc("/api/trends/popular", h.handlePopularTrends)
	h.mux.HandleFunc("/api/trends/latest", h.handleLatestTrends)
	h.mux.HandleFunc("/health", h.handleHealth)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleAnalyze runs the synchronous analysis pipeline and returns the
// token analysis together with fresh trend rankings.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		analyzeRequests.WithLabelValues("bad_request").Inc()
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracing.SetSpanAttributes(r.Context(),
		attribute.Int("text.length", len(req.Text)))

	start := time.Now()
	analysis, err := h.svc.Analyze(r.Context(), req.Text)
	analyzeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	analyzeRequests.WithLabelValues("ok").Inc()
	keywordsExtracted.Add(float64(len(analysis.Trends.Latest)))
	respondJSON(w, analysis, http.StatusOK)
}

// handleIngest enqueues a text for asynchronous trend ingestion and
// returns a job reference immediately.
func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.queue == nil {
		respondError(w, "Asynchronous ingestion is not enabled", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		respondError(w, "Text field is required", http.StatusBadRequest)
		return
	}

	jobID, taskID, err := h.queue.EnqueueIngestText(r.Context(), req.Text)
	if err != nil {
		h.logger.Error("failed to enqueue ingestion", "error", err)
		respondError(w, "Failed to enqueue ingestion", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{
		"job_id":  jobID,
		"task_id": taskID,
		"status":  "queued",
	}, http.StatusAccepted)
}

// handlePopularTrends serves the score-ranked view on its own.
func (h *Handler) handlePopularTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trendReads.WithLabelValues("popular").Inc()
	snapshot, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to read trends", "error", err)
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"trends": snapshot.Popular}, http.StatusOK)
}

// handleLatestTrends serves the recency-ranked view on its own.
func (h *Handler) handleLatestTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trendReads.WithLabelValues("latest").Inc()
	snapshot, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to read trends", "error", err)
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"trends": snapshot.Latest}, http.StatusOK)
}

// respondServiceError maps the service error taxonomy onto HTTP status
// codes. Internal details never reach the client.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case service.IsValidation(err):
		analyzeRequests.WithLabelValues("validation").Inc()
		respondError(w, err.Error(), http.StatusBadRequest)
	case service.IsConflict(err):
		analyzeRequests.WithLabelValues("conflict").Inc()
		h.logger.Warn("trend update conflict", "path", r.URL.Path, "error", err)
		respondError(w, "Service busy, please retry", http.StatusServiceUnavailable)
	default:
		analyzeRequests.WithLabelValues("error").Inc()
		h.logger.Error("analysis failed", "path", r.URL.Path, "error", err)
		respondError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
