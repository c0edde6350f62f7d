package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nezumi0627/trend-analysis-aI/internal/api"
	"github.com/nezumi0627/trend-analysis-aI/internal/database"
	"github.com/nezumi0627/trend-analysis-aI/internal/queue"
	"github.com/nezumi0627/trend-analysis-aI/internal/service"
	"github.com/nezumi0627/trend-analysis-aI/internal/trend"
	"github.com/nezumi0627/trend-analysis-aI/pkg/logging"
	"github.com/nezumi0627/trend-analysis-aI/pkg/tracing"
)

func main() {
	// Setup structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("trend-analysis service initializing", "version", "1.0.0")

	// Initialize tracing
	tp, err := tracing.InitTracer("trend-analysis")
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
		logger.Info("tracing initialized successfully")
	}

	// Get default values from environment variables, with fallbacks
	portDefault := getEnv("PORT", "8080")
	dbPathDefault := getEnv("DB_PATH", "trends.db")
	redisAddrDefault := getEnv("REDIS_ADDR", "localhost:6379")
	useQueueDefault := getEnvBool("USE_QUEUE", false)
	maxTextDefault := getEnvInt("MAX_TEXT_LENGTH", 10000)
	topNDefault := getEnvInt("TREND_TOP_N", 10)
	thresholdDefault := getEnvFloat("IMPORTANCE_THRESHOLD", trend.DefaultImportanceThreshold)

	var (
		port      = flag.String("port", portDefault, "Server port (env: PORT)")
		dbPath    = flag.String("db", dbPathDefault, "Database file path (env: DB_PATH)")
		redisAddr = flag.String("redis-addr", redisAddrDefault, "Redis address for the task queue (env: REDIS_ADDR)")
		useQueue  = flag.Bool("use-queue", useQueueDefault, "Enable asynchronous ingestion via Redis (env: USE_QUEUE)")
		maxText   = flag.Int("max-text-length", maxTextDefault, "Maximum accepted text length in bytes (env: MAX_TEXT_LENGTH)")
		topN      = flag.Int("top-n", topNDefault, "Number of trends returned per ranking (env: TREND_TOP_N)")
		threshold = flag.Float64("importance-threshold", thresholdDefault, "Minimum importance for trend keywords (env: IMPORTANCE_THRESHOLD)")
	)
	flag.Parse()

	// Initialize database
	db, err := database.New(*dbPath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err, "database_path", *dbPath)
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := database.NewTrendStore(db, trend.NewScoring())
	svc := service.New(store, service.Config{
		MaxTextLength:       *maxText,
		TopN:                *topN,
		ImportanceThreshold: *threshold,
	}, logger)

	// Optional asynchronous ingestion path backed by Redis
	var queueClient *queue.Client
	if *useQueue {
		queueClient = queue.NewClient(queue.ClientConfig{RedisAddr: *redisAddr})
		defer queueClient.Close()

		worker := queue.NewWorker(queue.WorkerConfig{
			RedisAddr:   *redisAddr,
			Concurrency: 4,
		}, svc, store)
		go func() {
			if err := worker.Start(); err != nil {
				logger.Error("queue worker stopped", "error", err)
			}
		}()
		defer worker.Shutdown()

		// Periodic score decay so stale trends sink even without traffic
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				if _, err := queueClient.EnqueueRefreshScores(context.Background()); err != nil {
					logger.Warn("failed to enqueue score refresh", "error", err)
				}
			}
		}()

		logger.Info("queue enabled", "redis_addr", *redisAddr)
	}

	// Initialize API handler
	var apiQueue api.QueueClient
	if queueClient != nil {
		apiQueue = queueClient
	}
	apiHandler := api.NewHandler(svc, apiQueue, logger)

	// Wrap handler with middleware chain: HTTP logging -> tracing -> handlers
	handler := logging.HTTPLoggingMiddleware(logger)(
		tracing.HTTPMiddleware("trend-analysis")(apiHandler),
	)

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("trend-analysis service starting",
			"port", *port,
			"database", *dbPath,
			"queue_enabled", *useQueue,
			"top_n", *topN,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
