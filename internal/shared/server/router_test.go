package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/analyses"
	"jobmatch-backend/internal/resumes"
	"jobmatch-backend/internal/search"
	"jobmatch-backend/internal/services/health"
	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/usage"
)

func testRouter(t *testing.T, healthSvc *health.Service) *gin.Engine {
	t.Helper()
	deps := RouterDeps{
		Config: config.Config{
			Env:             "dev",
			CORSAllowOrigin: []string{"http://localhost:5173"},
		},
		SearchHandler:   search.NewHandler(&search.Service{Store: search.NewMemoryStore()}),
		AnalysisHandler: analyses.NewHandler(&analyses.Service{}),
		ResumeHandler:   resumes.NewHandler(&resumes.Service{Repo: resumes.NewMemoryRepo()}),
		UsageHandler:    usage.NewHandler(usage.NewService()),
		Health:          healthSvc,
	}
	return NewRouter(deps)
}

func TestAddr(t *testing.T) {
	cases := []struct {
		port string
		want string
	}{
		{"", ":8080"},
		{"8081", ":8081"},
		{":9090", ":9090"},
	}
	for _, tc := range cases {
		if got := Addr(tc.port); got != tc.want {
			t.Fatalf("Addr(%q) = %q, want %q", tc.port, got, tc.want)
		}
	}
}

func TestRateLimitGroupBucketsByRoute(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/v1/search", "SEARCH"},
		{http.MethodPost, "/api/v1/score/quick", "SCORE"},
		{http.MethodPost, "/api/v1/score/batch", "SCORE"},
		{http.MethodPost, "/api/v1/analyses", "SCORE"},
		{http.MethodGet, "/api/v1/search/task-1", ""},
		{http.MethodPost, "/api/v1/resumes", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(tc.method, tc.path, nil)
		if got := rateLimitGroup(c); got != tc.want {
			t.Fatalf("rateLimitGroup(%s %s) = %q, want %q", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestHealthEndpointWithoutChecker(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestHealthEndpointReportsWiring(t *testing.T) {
	router := testRouter(t, health.NewService(nil, true, false))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var status map[string]bool
	if err := json.Unmarshal(resp.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode health payload: %v", err)
	}
	if !status["ok"] || !status["database"] {
		t.Fatalf("in-memory mode must report healthy, got %+v", status)
	}
	if !status["objectStore"] || status["provider"] {
		t.Fatalf("wiring flags not reflected: %+v", status)
	}
}

func TestMetricsEndpointSkipsIdentity(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "search_started_total") {
		t.Fatalf("metrics exposition missing counters: %s", resp.Body.String())
	}
}

func TestMeEndpointEchoesIdentity(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "g-9")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		UserID  string `json:"userId"`
		IsGuest bool   `json:"isGuest"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode me payload: %v", err)
	}
	if body.UserID != "guest:g-9" || !body.IsGuest {
		t.Fatalf("unexpected identity echo: %+v", body)
	}
}

func TestMeEndpointRequiresIdentity(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
}
