package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"placement-tutor/internal/catalog"
	"placement-tutor/internal/platform/logger"
)

func runClassifier(t *testing.T, f *fakeLLM, query string) *PipelineState {
	t.Helper()
	st := NewPipelineState(query, 3)
	NewClassifier(f, catalog.Default(), "test-model", logger.Discard()).Run(context.Background(), st)
	return st
}

func TestClassifier_accepts_placement_topic(t *testing.T) {
	f := newFakeLLM()
	st := runClassifier(t, f, "explain BSTs")

	if st.Rejected || st.Classification != ClassificationPlacementTopic {
		t.Fatalf("expected acceptance, got %+v", st)
	}
	if st.Topic != "Binary Search Trees" {
		t.Errorf("topic = %q, want detected topic", st.Topic)
	}
	req, _ := f.request(string(NodeClassifier))
	if req.Temperature != 0 || req.Model != "test-model" {
		t.Errorf("unexpected request settings: %+v", req)
	}
	if !strings.Contains(systemPrompt(req), "Web Development with MERN Stack") {
		t.Error("classifier prompt should embed the catalog")
	}
	if userPrompt(req) != "explain BSTs" {
		t.Errorf("user prompt = %q", userPrompt(req))
	}
}

func TestClassifier_empty_detected_topic_uses_query(t *testing.T) {
	f := newFakeLLM().set(string(NodeClassifier), reply{out: `{"classification":"placement_topic","reason":"","detectedTopic":"  "}`})
	st := runClassifier(t, f, "tcp handshake")
	if st.Topic != "tcp handshake" {
		t.Errorf("topic = %q, want query", st.Topic)
	}
}

func TestClassifier_rejections(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		class  Classification
		marker string
	}{
		{
			name:   "irrelevant",
			raw:    `{"classification":"irrelevant","reason":"This is about cooking.","detectedTopic":""}`,
			class:  ClassificationIrrelevant,
			marker: IrrelevantMarker,
		},
		{
			name:   "harmful_fenced",
			raw:    "```json\n{\"classification\":\"harmful\",\"reason\":\"Malware request.\",\"detectedTopic\":\"\"}\n```",
			class:  ClassificationHarmful,
			marker: HarmfulMarker,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeLLM().set(string(NodeClassifier), reply{out: tt.raw})
			st := runClassifier(t, f, "q")
			if !st.Rejected || st.Classification != tt.class {
				t.Fatalf("expected %s rejection, got %+v", tt.class, st)
			}
			if !strings.HasPrefix(st.RejectionReason, tt.marker) {
				t.Errorf("reason %q should start with %q", st.RejectionReason, tt.marker)
			}
			if st.Topic != "" {
				t.Errorf("rejected state should have no topic, got %q", st.Topic)
			}
		})
	}
}

func TestClassifier_fails_open(t *testing.T) {
	tests := []struct {
		name string
		r    reply
	}{
		{"provider_error", reply{err: errProviderDown}},
		{"not_json", reply{out: "Sure! This is a placement topic."}},
		{"unknown_classification", reply{out: `{"classification":"maybe","reason":"","detectedTopic":""}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeLLM().set(string(NodeClassifier), tt.r)
			st := runClassifier(t, f, "graphs")
			if st.Rejected || st.Classification != ClassificationPlacementTopic || st.Topic != "graphs" {
				t.Fatalf("expected fail-open acceptance, got %+v", st)
			}
			if len(st.Errors) != 1 || st.Errors[0].Stage != string(NodeClassifier) {
				t.Errorf("expected one classifier failure, got %+v", st.Errors)
			}
		})
	}
}

func TestParseVerdict_unknown_classification(t *testing.T) {
	_, err := parseVerdict(`{"classification":"other"}`)
	if !errors.Is(err, ErrUnknownClassification) {
		t.Errorf("expected ErrUnknownClassification, got %v", err)
	}
	v, err := parseVerdict(`{"classification":" Placement_Topic "}`)
	if err != nil || v.Classification != ClassificationPlacementTopic {
		t.Errorf("classification should be normalised, got %v, %v", v, err)
	}
}
