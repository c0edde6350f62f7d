package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analyzeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trendanalysis_analyze_requests_total",
		Help: "Analyze requests by outcome.",
	}, []string{"status"})

	analyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trendanalysis_analyze_duration_seconds",
		Help:    "End-to-end analyze pipeline latency.",
		Buckets: prometheus.DefBuckets,
	})

	keywordsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendanalysis_keywords_extracted_total",
		Help: "Keyword candidates folded into the trend store.",
	})

	trendReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trendanalysis_trend_reads_total",
		Help: "Trend ranking reads by view.",
	}, []string{"view"})
)
