package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nezumi0627/trend-analysis-aI/internal/database"
	"github.com/nezumi0627/trend-analysis-aI/internal/service"
)

// Worker wraps the Asynq server for processing trend tasks
type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	svc         *service.Service
	store       *database.TrendStore
	concurrency int
	logger      *slog.Logger
}

// WorkerConfig contains configuration for the queue worker
type WorkerConfig struct {
	RedisAddr   string
	Concurrency int
}

// NewWorker creates a new queue worker
func NewWorker(cfg WorkerConfig, svc *service.Service, store *database.TrendStore) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr: cfg.RedisAddr,
	}

	serverCfg := asynq.Config{
		Concurrency: cfg.Concurrency,

		// Ingestion outranks maintenance; proportional, not strict
		Queues: map[string]int{
			QueueIngest:      6,
			QueueMaintenance: 2,
		},
		StrictPriority: false,

		// Short ladder: contention clears quickly or not at all
		RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
			delays := []time.Duration{
				5 * time.Second,
				30 * time.Second,
				2 * time.Minute,
			}
			if n < len(delays) {
				return delays[n]
			}
			return delays[len(delays)-1]
		},

		ShutdownTimeout: 30 * time.Second,

		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)

			slog.Error("task processing error",
				"task_type", task.Type(),
				"error", err,
				"retry_count", retried,
				"max_retries", maxRetry,
			)
		}),
	}

	w := &Worker{
		server:      asynq.NewServer(redisOpt, serverCfg),
		mux:         asynq.NewServeMux(),
		svc:         svc,
		store:       store,
		concurrency: cfg.Concurrency,
		logger:      slog.Default(),
	}

	w.registerHandlers()

	return w
}

// registerHandlers registers all task handlers with the worker
func (w *Worker) registerHandlers() {
	w.mux.HandleFunc(TypeIngestText, w.handleIngestText)
	w.mux.HandleFunc(TypeRefreshScores, w.handleRefreshScores)
}

// handleIngestText runs the analysis pipeline for its trend side
// effects. Validation failures never retry; conflicts go back through
// the retry ladder.
func (w *Worker) handleIngestText(ctx context.Context, task *asynq.Task) error {
	var payload IngestTextPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal ingest payload: %v: %w", err, asynq.SkipRetry)
	}

	start := time.Now()
	if err := w.svc.Ingest(ctx, payload.Text); err != nil {
		if service.IsValidation(err) {
			w.logger.Warn("dropping invalid ingest task", "job_id", payload.JobID, "error", err)
			return fmt.Errorf("invalid text: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("ingest failed: %w", err)
	}

	queueWait := time.Duration(start.UnixNano() - payload.EnqueuedAt)
	w.logger.Info("text ingested",
		"job_id", payload.JobID,
		"text_length", len(payload.Text),
		"queue_wait_ms", queueWait.Milliseconds(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

// handleRefreshScores applies score decay across the trend table.
func (w *Worker) handleRefreshScores(ctx context.Context, task *asynq.Task) error {
	var payload RefreshScoresPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal refresh payload: %v: %w", err, asynq.SkipRetry)
	}

	updated, err := w.store.RefreshScores(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("score refresh failed: %w", err)
	}

	w.logger.Info("trend scores refreshed", "updated", updated)
	return nil
}

// Start starts the worker to begin processing tasks. Run is blocking.
func (w *Worker) Start() error {
	w.logger.Info("starting asynq worker",
		"concurrency", w.concurrency,
		"queues", map[string]int{QueueIngest: 6, QueueMaintenance: 2},
	)

	if err := w.server.Run(w.mux); err != nil {
		return fmt.Errorf("asynq server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the worker
func (w *Worker) Shutdown() {
	w.logger.Info("shutting down asynq worker")
	w.server.Shutdown()
}
