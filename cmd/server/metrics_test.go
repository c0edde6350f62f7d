package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	// Use the prometheus handler directly
	handler := promhttp.Handler()
	handler.ServeHTTP(w, req)

	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/plain") {
		t.Errorf("Expected content-type to contain 'text/plain', got '%s'", contentType)
	}

	body := w.Body.String()

	// Check for standard Go runtime metrics
	expectedMetrics := []string{
		"go_goroutines",
		"go_threads",
		"go_info",
		"promhttp_metric_handler",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(body, metric) {
			t.Errorf("Expected metrics to contain '%s'", metric)
		}
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TA_TEST_STR", "hello")
	if got := getEnv("TA_TEST_STR", "fallback"); got != "hello" {
		t.Errorf("getEnv = %q, want hello", got)
	}
	if got := getEnv("TA_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv = %q, want fallback", got)
	}

	t.Setenv("TA_TEST_BOOL", "yes")
	if !getEnvBool("TA_TEST_BOOL", false) {
		t.Error("getEnvBool should treat 'yes' as true")
	}

	t.Setenv("TA_TEST_INT", "42")
	if got := getEnvInt("TA_TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}
	t.Setenv("TA_TEST_INT", "not-a-number")
	if got := getEnvInt("TA_TEST_INT", 7); got != 7 {
		t.Errorf("getEnvInt with invalid value = %d, want 7", got)
	}

	t.Setenv("TA_TEST_FLOAT", "1.5")
	if got := getEnvFloat("TA_TEST_FLOAT", 0.5); got != 1.5 {
		t.Errorf("getEnvFloat = %v, want 1.5", got)
	}
}
