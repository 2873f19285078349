package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositionCounters(t *testing.T) {
	c := NewCompositionCounters()
	c.Record("isorhythm", 15, true)
	c.Record("isorhythm", 0, false)
	c.Record("canon", 8, true)

	stats := c.Snapshot()
	require.Len(t, stats, 2)
	assert.Equal(t, OperationStats{Operation: "canon", Calls: 1, Events: 8}, stats[0])
	assert.Equal(t, OperationStats{Operation: "isorhythm", Calls: 2, Failures: 1, Events: 15}, stats[1])
}

func TestCompositionCountersNil(t *testing.T) {
	var c *CompositionCounters
	c.Record("isorhythm", 1, true)
	assert.Nil(t, c.Snapshot())
}

func TestCompositionCountersConcurrent(t *testing.T) {
	c := NewCompositionCounters()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record("hocket", 2, true)
		}()
	}
	wg.Wait()

	stats := c.Snapshot()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(50), stats[0].Calls)
	assert.Equal(t, int64(100), stats[0].Events)
}
