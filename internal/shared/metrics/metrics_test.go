package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	var buf bytes.Buffer
	writeHistogram(&buf, "t", "test histogram", h.Snapshot())
	out := buf.String()

	for _, want := range []string{
		`t_bucket{le="10"} 1`,
		`t_bucket{le="100"} 2`,
		`t_bucket{le="+Inf"} 3`,
		`t_sum 555`,
		`t_count 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestHistogramObservationAboveAllBuckets(t *testing.T) {
	h := newHistogram([]float64{10})
	h.Observe(1000)

	var buf bytes.Buffer
	writeHistogram(&buf, "t", "test histogram", h.Snapshot())
	out := buf.String()

	if !strings.Contains(out, `t_bucket{le="10"} 0`) {
		t.Fatalf("oversized observation must not land in a finite bucket:\n%s", out)
	}
	if !strings.Contains(out, `t_bucket{le="+Inf"} 1`) {
		t.Fatalf("oversized observation must count toward +Inf:\n%s", out)
	}
}

// counterValue reads one counter out of the rendered exposition. The
// registry is process-global, so tests diff values instead of assuming
// a clean slate.
func counterValue(t *testing.T, rendered, name string) uint64 {
	t.Helper()
	for _, line := range strings.Split(rendered, "\n") {
		if strings.HasPrefix(line, name+" ") {
			v, err := strconv.ParseUint(strings.TrimPrefix(line, name+" "), 10, 64)
			if err != nil {
				t.Fatalf("parse %q: %v", line, err)
			}
			return v
		}
	}
	t.Fatalf("counter %s not rendered", name)
	return 0
}

func TestCountersIncrement(t *testing.T) {
	before := counterValue(t, Render(), "search_started_total")
	IncSearchStarted()
	after := counterValue(t, Render(), "search_started_total")
	if after != before+1 {
		t.Fatalf("search_started_total = %d, want %d", after, before+1)
	}

	before = counterValue(t, Render(), "jobs_scored_total")
	AddJobsScored(7)
	AddJobsScored(-3)
	after = counterValue(t, Render(), "jobs_scored_total")
	if after != before+7 {
		t.Fatalf("jobs_scored_total = %d, want %d (negative adds ignored)", after, before+7)
	}
}

func TestHandlerServesTextFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", ct)
	}
	if !strings.Contains(resp.Body.String(), "# TYPE search_started_total counter") {
		t.Fatalf("expected counter type line in body:\n%s", resp.Body.String())
	}
}
