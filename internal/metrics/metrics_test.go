package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development", "us-east-1")
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// must be no-ops
	client.RecordAPIRequest("/api/v1/isorhythm", 200, time.Millisecond)
	client.RecordComposition("isorhythm", 15, time.Millisecond, true)
}

func TestNilClientIsDisabled(t *testing.T) {
	var client *Client
	assert.False(t, client.Enabled())
	client.RecordComposition("canon", 3, time.Millisecond, false)
}

func TestSentryMetricsWithoutClient(t *testing.T) {
	m := NewSentryMetrics()
	ctx := context.Background()

	m.RecordAPIRequest(ctx, "/health", 200, time.Millisecond)

	span := m.StartComposition(ctx, "hocket")
	require.NotNil(t, span)
	m.FinishComposition(span, 8, time.Millisecond, nil)

	failed := m.StartComposition(ctx, "canon")
	m.FinishComposition(failed, 0, time.Millisecond, errors.New("bad delay"))

	m.FinishComposition(nil, 0, 0, nil)
	m.RecordPerformanceMetric("settheory.subsets", time.Millisecond, map[string]interface{}{"cardinality": 5})
}
