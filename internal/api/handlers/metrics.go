package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/magda-composer/internal/config"
	"github.com/Conceptual-Machines/magda-composer/internal/metrics"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	cfg       *config.Config
	counters  *metrics.CompositionCounters
}

// NewMetricsHandler reports runtime data plus the composition totals kept in
// counters, which may be nil
func NewMetricsHandler(version string, cfg *config.Config, counters *metrics.CompositionCounters) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		cfg:       cfg,
		counters:  counters,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string                 `json:"status"`
	Uptime    string                 `json:"uptime"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	StartTime string                 `json:"start_time"`
	System    SystemMetrics          `json:"system"`
	API       map[string]interface{} `json:"api"`
	Composer  ComposerMetrics        `json:"composer"`
}

type ComposerMetrics struct {
	TotalCalls    int64                    `json:"total_calls"`
	TotalFailures int64                    `json:"total_failures"`
	TotalEvents   int64                    `json:"total_events"`
	Operations    []metrics.OperationStats `json:"operations"`
}

func composerMetrics(counters *metrics.CompositionCounters) ComposerMetrics {
	out := ComposerMetrics{Operations: counters.Snapshot()}
	if out.Operations == nil {
		out.Operations = []metrics.OperationStats{}
	}
	for _, op := range out.Operations {
		out.TotalCalls += op.Calls
		out.TotalFailures += op.Failures
		out.TotalEvents += op.Events
	}
	return out
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

const (
	bytesToMB = 1024 * 1024
)

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(uptime),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			MemTotalMB:   m.TotalAlloc / bytesToMB,
			NumGC:        m.NumGC,
		},
		API: map[string]interface{}{
			"version":     "1.0.0",
			"auth_mode":   h.cfg.AuthMode,
			"max_events":  h.cfg.MaxEvents,
			"persistence": h.cfg.PersistenceEnabled(),
		},
		Composer: composerMetrics(h.counters),
	}

	c.JSON(http.StatusOK, resp)
}
