package respond

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/telemetry"
)

func performError(t *testing.T, status int, code string) (*httptest.ResponseRecorder, []map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		Error(c, status, code, "something", nil)
	})

	var buf bytes.Buffer
	prev := telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(prev)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	var logged []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line not JSON: %v in %q", err, line)
		}
		logged = append(logged, entry)
	}
	return resp, logged
}

func TestErrorEnvelopeShape(t *testing.T) {
	resp, _ := performError(t, http.StatusNotFound, "not_found")

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if body.Error.Code != "not_found" || body.Error.Message != "something" {
		t.Fatalf("unexpected envelope %+v", body)
	}
}

func TestErrorLogLevelTracksStatusClass(t *testing.T) {
	_, logged := performError(t, http.StatusBadRequest, "validation_error")
	if len(logged) == 0 || logged[0]["level"] != "info" {
		t.Fatalf("expected info level for a 400, got %v", logged)
	}

	_, logged = performError(t, http.StatusInternalServerError, "internal_error")
	if len(logged) == 0 || logged[0]["level"] != "error" {
		t.Fatalf("expected error level for a 500, got %v", logged)
	}
}
