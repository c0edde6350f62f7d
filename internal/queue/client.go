package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Queue names. Ingestion outranks maintenance.
const (
	QueueIngest      = "trend-ingest"
	QueueMaintenance = "maintenance"
)

// Client wraps the Asynq client for enqueueing tasks
type Client struct {
	client *asynq.Client
}

// ClientConfig contains configuration for the queue client
type ClientConfig struct {
	RedisAddr string
}

// NewClient creates a new queue client
func NewClient(cfg ClientConfig) *Client {
	redisOpt := asynq.RedisClientOpt{
		Addr: cfg.RedisAddr,
	}

	return &Client{
		client: asynq.NewClient(redisOpt),
	}
}

// EnqueueIngestText enqueues a text for trend ingestion and returns the
// job and task IDs.
func (c *Client) EnqueueIngestText(ctx context.Context, text string) (string, string, error) {
	jobID := uuid.NewString()
	payload := IngestTextPayload{
		JobID:      jobID,
		Text:       text,
		EnqueuedAt: time.Now().UnixNano(),
	}

	// Propagate tracing context if available
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		spanCtx := span.SpanContext()
		payload.TraceID = spanCtx.TraceID().String()
		payload.SpanID = spanCtx.SpanID().String()

		span.AddEvent("task_enqueued", trace.WithAttributes(
			attribute.String("task.type", TypeIngestText),
			attribute.String("job_id", jobID),
			attribute.Int64("enqueued_at", payload.EnqueuedAt),
		))
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TypeIngestText, payloadBytes, asynq.TaskID(jobID))

	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(2 * time.Minute),
		asynq.Queue(QueueIngest),
		asynq.Retention(24 * time.Hour),
	}

	info, err := c.client.Enqueue(task, opts...)
	if err != nil {
		return "", "", fmt.Errorf("failed to enqueue ingest task: %w", err)
	}

	return jobID, info.ID, nil
}

// EnqueueRefreshScores enqueues a score decay recomputation.
func (c *Client) EnqueueRefreshScores(ctx context.Context) (string, error) {
	payload := RefreshScoresPayload{
		RequestedAt: time.Now().UnixNano(),
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TypeRefreshScores, payloadBytes)

	opts := []asynq.Option{
		asynq.MaxRetry(1),
		asynq.Timeout(5 * time.Minute),
		asynq.Queue(QueueMaintenance),
	}

	info, err := c.client.Enqueue(task, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue refresh task: %w", err)
	}

	return info.ID, nil
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}
