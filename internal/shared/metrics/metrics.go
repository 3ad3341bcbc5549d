package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	searchStartedTotal   atomic.Uint64
	searchCompletedTotal atomic.Uint64
	searchFailedTotal    atomic.Uint64
	jobsScoredTotal      atomic.Uint64

	analysisServedTotal   atomic.Uint64
	quickScoreServedTotal atomic.Uint64

	searchDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncSearchStarted increments the started counter.
func IncSearchStarted() {
	searchStartedTotal.Add(1)
}

// IncSearchCompleted increments the completed counter.
func IncSearchCompleted() {
	searchCompletedTotal.Add(1)
}

// IncSearchFailed increments the failed counter.
func IncSearchFailed() {
	searchFailedTotal.Add(1)
}

// AddJobsScored records how many postings a finished task scored.
func AddJobsScored(n int) {
	if n <= 0 {
		return
	}
	jobsScoredTotal.Add(uint64(n))
}

// IncAnalysisServed increments the direct-analysis counter.
func IncAnalysisServed() {
	analysisServedTotal.Add(1)
}

// IncQuickScoreServed increments the quick-score counter.
func IncQuickScoreServed() {
	quickScoreServedTotal.Add(1)
}

// ObserveSearchDurationMs records a search task duration in milliseconds.
func ObserveSearchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	searchDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "search_started_total", "Total search tasks started", searchStartedTotal.Load())
	writeCounter(&buf, "search_completed_total", "Total search tasks completed", searchCompletedTotal.Load())
	writeCounter(&buf, "search_failed_total", "Total search tasks failed", searchFailedTotal.Load())
	writeCounter(&buf, "jobs_scored_total", "Total job postings scored", jobsScoredTotal.Load())
	writeCounter(&buf, "analysis_served_total", "Total direct analyses served", analysisServedTotal.Load())
	writeCounter(&buf, "quick_score_served_total", "Total quick scores served", quickScoreServedTotal.Load())
	writeHistogram(&buf, "search_duration_ms", "Search task duration in milliseconds", searchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value into the first bucket that fits. Buckets hold
// per-bucket counts; rendering accumulates them into the cumulative
// series the exposition format wants.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
