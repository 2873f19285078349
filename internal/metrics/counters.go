package metrics

import (
	"sort"
	"sync"
)

// OperationStats are the running totals of one composition operation
type OperationStats struct {
	Operation string `json:"operation"`
	Calls     int64  `json:"calls"`
	Failures  int64  `json:"failures"`
	Events    int64  `json:"events"`
}

// CompositionCounters keeps in-process totals per composition operation.
// The zero value is ready to use and a nil receiver records nothing.
type CompositionCounters struct {
	mu    sync.Mutex
	stats map[string]*OperationStats
}

// NewCompositionCounters creates an empty set of counters
func NewCompositionCounters() *CompositionCounters {
	return &CompositionCounters{}
}

// Record adds one call of operation
func (c *CompositionCounters) Record(operation string, events int, success bool) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stats == nil {
		c.stats = make(map[string]*OperationStats)
	}
	s, ok := c.stats[operation]
	if !ok {
		s = &OperationStats{Operation: operation}
		c.stats[operation] = s
	}
	s.Calls++
	if success {
		s.Events += int64(events)
	} else {
		s.Failures++
	}
}

// Snapshot returns a copy of the totals sorted by operation name
func (c *CompositionCounters) Snapshot() []OperationStats {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]OperationStats, 0, len(c.stats))
	for _, s := range c.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Operation < out[j].Operation
	})
	return out
}
