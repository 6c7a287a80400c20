package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/skillmatch/internal/analysis"
	"github.com/spigell/skillmatch/internal/metrics"
)

type staticAdvisor struct {
	text string
}

func (a staticAdvisor) Advise(context.Context, string, string) (string, error) {
	return a.text, nil
}

func newTestServer(t *testing.T, cfg Config) (*Server, *metrics.Recorder) {
	t.Helper()
	rec := metrics.New()
	engine := analysis.New(nil, analysis.Options{
		Advisor:  staticAdvisor{text: "1. Add React."},
		Observer: rec,
	})
	return New(engine, rec, cfg, nil), rec
}

func do(t *testing.T, s *Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var payload map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	}
	return resp, payload
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	resp, payload := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", payload["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestAnalyzeEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	t.Run("deterministic only", func(t *testing.T) {
		resp, payload := do(t, s, http.MethodPost, "/ai/analyze",
			`{"job_description":"Looking for Python and React skills.","resume_text":"Python developer."}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 50, payload["match_score"])
		assert.Equal(t, []any{"python"}, payload["matched_skills"])
		assert.Equal(t, []any{"react"}, payload["missing_skills"])
		assert.EqualValues(t, 100, payload["experience_match"])
		assert.EqualValues(t, 500, payload["keyword_density"])
		assert.Contains(t, payload, "ai_suggestions")
		assert.Nil(t, payload["ai_suggestions"])
	})

	t.Run("with advisory suggestions", func(t *testing.T) {
		resp, payload := do(t, s, http.MethodPost, "/ai/analyze",
			`{"job_description":"Looking for Python and React skills.","resume_text":"Python developer.","use_ai":true}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "1. Add React.", payload["ai_suggestions"])
		assert.EqualValues(t, 50, payload["match_score"])
	})
}

func TestAnalyzeEndpointRejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "missing resume", body: `{"job_description":"Python"}`, want: "job_description and resume_text are required"},
		{name: "missing job", body: `{"resume_text":"Python"}`, want: "job_description and resume_text are required"},
		{name: "blank texts", body: `{"job_description":"  ","resume_text":"\n"}`, want: "job_description and resume_text are required"},
		{name: "malformed json", body: `{"job_description":`, want: "invalid request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, payload := do(t, s, http.MethodPost, "/ai/analyze", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.want, payload["error"])
		})
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	resp, payload := do(t, s, http.MethodPost, "/ai/suggestions",
		`{"job_description":"Python engineer","resume_text":"Java developer"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1. Add React.", payload["suggestions"])

	resp, payload = do(t, s, http.MethodPost, "/ai/suggestions", `{"job_description":"Python engineer"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "job_description and resume_text are required", payload["error"])
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, Config{RateLimit: 1})
	body := `{"job_description":"Python","resume_text":"Python"}`

	resp, _ := do(t, s, http.MethodPost, "/ai/analyze", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, payload := do(t, s, http.MethodPost, "/ai/analyze", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "too many requests", payload["error"])

	resp, _ = do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	resp, _ := do(t, s, http.MethodPost, "/ai/analyze",
		`{"job_description":"Python","resume_text":"Python","use_ai":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)

	body := string(raw)
	assert.Equal(t, http.StatusOK, mresp.StatusCode)
	assert.Contains(t, body, "skillmatch_analyses_total 1")
	assert.Contains(t, body, `skillmatch_advisory_requests_total{outcome="success"} 1`)
	assert.Contains(t, body, `skillmatch_http_requests_total{method="POST",route="/ai/analyze",status_code="200"} 1`)
}

func TestMetricsRouteIsOptional(t *testing.T) {
	s := New(analysis.New(nil, analysis.Options{}), nil, Config{}, nil)

	resp, _ := do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
