package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for API request tracking using the request context
	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	// Set span tags
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	// Set span status based on response
	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	// Set span description
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// StartComposition opens a span around one composition operation. Finish it
// with FinishComposition.
func (m *SentryMetrics) StartComposition(ctx context.Context, operation string) *sentry.Span {
	span := sentry.StartSpan(ctx, "composer."+operation)
	span.Description = fmt.Sprintf("Composition: %s", operation)
	span.SetTag("operation", operation)
	return span
}

// FinishComposition records the outcome of an operation on its span
func (m *SentryMetrics) FinishComposition(span *sentry.Span, events int, duration time.Duration, err error) {
	if span == nil {
		return
	}
	defer span.Finish()

	if !m.enabled {
		return
	}

	span.SetData("events", events)
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetTag("success", fmt.Sprintf("%t", err == nil))

	if err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
}

// RecordPerformanceMetric records performance data
func (m *SentryMetrics) RecordPerformanceMetric(operation string, duration time.Duration, metadata map[string]interface{}) {
	if !m.enabled {
		return
	}

	// Use Sentry's performance monitoring
	ctx := context.Background()
	span := sentry.StartSpan(ctx, operation)
	span.Description = operation
	span.SetData("duration_ms", duration.Milliseconds())

	// Add metadata
	for key, value := range metadata {
		span.SetData(key, value)
	}

	span.Finish()
}
