package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/triage/internal/ranking/application/queries"
	"github.com/felixgeelhaar/triage/internal/ranking/application/services"
	"github.com/felixgeelhaar/triage/internal/ranking/domain"
	"github.com/felixgeelhaar/triage/pkg/observability"
)

func newTestHandler() *RankingHandler {
	cfg := services.DefaultRankingServiceConfig()
	cfg.Clock = func() time.Time {
		return time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC)
	}
	service := services.NewRankingService(services.NewStrategyEngine(), cfg)
	return NewRankingHandler(RankingHandlerConfig{
		Analyze: queries.NewAnalyzeTasksHandler(service, domain.StrategySmartBalance, nil, nil),
		Suggest: queries.NewSuggestTasksHandler(service, domain.StrategySmartBalance, nil, nil),
	})
}

func newTestServer() *Server {
	health := observability.NewHealthRegistry()
	health.Register("ranking", observability.Healthy("ranking engine ready"))
	return NewServer(DefaultServerConfig(), newTestHandler(), health, nil, nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

const sampleBody = `{
	"tasks": [
		{"id": 1, "title": "Write report", "due_date": "2026-08-28", "estimated_hours": 0.5, "importance": 9},
		{"id": 2, "title": "Plan offsite", "due_date": "2026-09-20", "estimated_hours": 6, "importance": 4},
		{"id": 3, "title": "Fix login bug", "due_date": "2026-08-31", "estimated_hours": 2, "importance": 7, "dependencies": [1]},
		{"id": 4, "title": "Deploy release", "due_date": "2026-08-29", "estimated_hours": 1, "importance": 8, "dependencies": [3]}
	]
}`

func TestRankingHandler_AnalyzeTasks(t *testing.T) {
	handler := newTestHandler()

	t.Run("ranks a valid batch", func(t *testing.T) {
		rec := postJSON(t, handler.AnalyzeTasks, sampleBody)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp AnalyzeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, "smart_balance", resp.StrategyUsed)
		assert.Equal(t, 4, resp.TotalTasks)
		require.Len(t, resp.Tasks, 4)
		assert.Nil(t, resp.Warnings)

		// Task 1 is overdue by one day, a quick win, important, and
		// unblocks task 3: 101 + 72 + 25 + 20 = 218.
		assert.Equal(t, 1, resp.Tasks[0].ID)
		assert.Equal(t, 218.0, resp.Tasks[0].PriorityScore)
		assert.NotEmpty(t, resp.Tasks[0].Explanation)

		for i := 1; i < len(resp.Tasks); i++ {
			assert.GreaterOrEqual(t, resp.Tasks[i-1].PriorityScore, resp.Tasks[i].PriorityScore)
		}
	})

	t.Run("honors the strategy field", func(t *testing.T) {
		body := strings.Replace(sampleBody, `]
}`, `],
	"strategy": "high_impact"
}`, 1)
		rec := postJSON(t, handler.AnalyzeTasks, body)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp AnalyzeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "high_impact", resp.StrategyUsed)
	})

	t.Run("reports circular dependencies without dropping tasks", func(t *testing.T) {
		body := `{"tasks": [
			{"id": 1, "title": "a", "due_date": "2026-09-01", "estimated_hours": 1, "importance": 5, "dependencies": [2]},
			{"id": 2, "title": "b", "due_date": "2026-09-01", "estimated_hours": 1, "importance": 5, "dependencies": [3]},
			{"id": 3, "title": "c", "due_date": "2026-09-01", "estimated_hours": 1, "importance": 5, "dependencies": [1]}
		]}`
		rec := postJSON(t, handler.AnalyzeTasks, body)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp AnalyzeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		require.NotNil(t, resp.Warnings)
		assert.Equal(t, []int{1, 2, 3}, resp.Warnings.CircularDependencies)
		assert.Len(t, resp.Tasks, 3)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		rec := postJSON(t, handler.AnalyzeTasks, `{"tasks": [`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an empty task list", func(t *testing.T) {
		rec := postJSON(t, handler.AnalyzeTasks, `{"tasks": []}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "must not be empty")
	})

	t.Run("rejects an unknown strategy", func(t *testing.T) {
		body := `{"tasks": [{"id": 1, "title": "a", "due_date": "2026-09-01", "estimated_hours": 1, "importance": 5}], "strategy": "unknown_strategy"}`
		rec := postJSON(t, handler.AnalyzeTasks, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown_strategy")
	})

	t.Run("rejects a malformed due date", func(t *testing.T) {
		body := `{"tasks": [{"id": 1, "title": "a", "due_date": "soon", "estimated_hours": 1, "importance": 5}]}`
		rec := postJSON(t, handler.AnalyzeTasks, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects importance out of range", func(t *testing.T) {
		body := `{"tasks": [{"id": 1, "title": "a", "due_date": "2026-09-01", "estimated_hours": 1, "importance": 12}]}`
		rec := postJSON(t, handler.AnalyzeTasks, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRankingHandler_SuggestTasks(t *testing.T) {
	handler := newTestHandler()

	t.Run("returns the top three with ranks and recommendations", func(t *testing.T) {
		rec := postJSON(t, handler.SuggestTasks, sampleBody)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SuggestResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Contains(t, resp.Message, "Top 3 tasks")
		require.Len(t, resp.Suggestions, 3)
		for i, s := range resp.Suggestions {
			assert.Equal(t, i+1, s.Rank)
			assert.NotEmpty(t, s.WhyThisTask)
			assert.NotEmpty(t, s.Recommendation)
		}
		assert.Equal(t, 1, resp.Suggestions[0].Task.ID)
		assert.Contains(t, resp.Suggestions[0].Recommendation, "Write report")
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		rec := postJSON(t, handler.SuggestTasks, `{"tasks": []}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Health(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_RequestContextMiddleware(t *testing.T) {
	server := newTestServer()
	wrapped := server.withRequestContext(server.mux)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_RequestMetrics(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	health := observability.NewHealthRegistry()
	server := NewServer(DefaultServerConfig(), newTestHandler(), health, metrics, nil)
	wrapped := server.withRequestContext(server.mux)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	tags := []observability.Tag{
		observability.T("method", "GET"),
		observability.T("path", "/health"),
		observability.T("status", "200"),
	}
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricHTTPRequests, tags...))
	assert.Len(t, metrics.GetTimings(observability.MetricHTTPRequestDuration, tags...), 1)
}

func TestServer_RequestIDPassthrough(t *testing.T) {
	server := newTestServer()
	wrapped := server.withRequestContext(server.mux)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}
