package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNilMetrics_is_noop(t *testing.T) {
	var m *Metrics
	m.IncRequests()
	m.IncErrors()
	m.IncInvocation("completed")
	m.IncClassification("harmful")
	m.ObserveStage("classifier", time.Second)
	m.ObserveLLMCall("content", errors.New("boom"))
	m.IncMediaFailures()
	m.SetStoredArtifacts(3)
}

func TestHandler_exposes_pipeline_metrics(t *testing.T) {
	m := New()
	m.IncInvocation("rejected")
	m.IncClassification("irrelevant")
	m.ObserveLLMCall("classifier", nil)
	m.ObserveLLMCall("media_visual", errors.New("timeout"))

	refreshed := false
	rec := httptest.NewRecorder()
	m.Handler(func() {
		refreshed = true
		m.SetStoredArtifacts(2)
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !refreshed {
		t.Error("updateGauges should run before scrape")
	}
	body := rec.Body.String()
	for _, want := range []string{
		`tutor_pipeline_invocations_total{outcome="rejected"} 1`,
		`tutor_classifications_total{classification="irrelevant"} 1`,
		`tutor_llm_calls_total{result="error",stage="media_visual"} 1`,
		`tutor_stored_artifacts 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestRequestMiddleware_counts_errors(t *testing.T) {
	m := New()
	h := RequestMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/generate", nil))

	rec := httptest.NewRecorder()
	m.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "tutor_http_requests_total 1") || !strings.Contains(body, "tutor_http_errors_total 1") {
		t.Errorf("expected one request and one error:\n%s", body)
	}
}

func TestRegistry_gathers_stage_histogram(t *testing.T) {
	m := New()
	m.ObserveStage("content", 1500*time.Millisecond)
	m.ObserveStage("content", 500*time.Millisecond)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "tutor_stage_duration_seconds" {
			continue
		}
		h := mf.GetMetric()[0].GetHistogram()
		if h.GetSampleCount() != 2 || h.GetSampleSum() != 2 {
			t.Errorf("histogram count=%d sum=%v, want 2 and 2", h.GetSampleCount(), h.GetSampleSum())
		}
		return
	}
	t.Error("tutor_stage_duration_seconds not registered")
}
