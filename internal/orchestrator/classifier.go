package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"placement-tutor/internal/llm"
)

// Rejection markers let clients tell the two rejection kinds apart.
const (
	HarmfulMarker    = "⚠️ Request blocked"
	IrrelevantMarker = "🎯 Off-topic"
)

const classifierMaxTokens = 300

// ErrUnknownClassification is returned when the model answers with a
// classification outside the three known values.
var ErrUnknownClassification = errors.New("unknown classification")

// CatalogSource provides the flattened topic catalog embedded in prompts.
type CatalogSource interface {
	Context() string
}

type verdict struct {
	Classification Classification `json:"classification"`
	Reason         string         `json:"reason"`
	DetectedTopic  string         `json:"detectedTopic"`
}

// Classifier decides whether a query is a placement topic.
type Classifier struct {
	llm     llm.Completer
	catalog CatalogSource
	model   string
	log     *slog.Logger
}

// NewClassifier returns the classifier stage.
func NewClassifier(c llm.Completer, catalog CatalogSource, model string, log *slog.Logger) *Classifier {
	return &Classifier{llm: c, catalog: catalog, model: model, log: log}
}

// Name implements Stage.
func (c *Classifier) Name() NodeName { return NodeClassifier }

// Run implements Stage. It never fails the pipeline: when the model call or
// the verdict parsing fails the query is accepted as is (fail-open).
func (c *Classifier) Run(ctx context.Context, st *PipelineState) {
	log := loggerFrom(ctx, c.log)
	v, err := c.classify(ctx, st.Query)
	if err != nil {
		log.Warn("classifier failed, accepting query",
			slog.String("query", st.Query),
			slog.String("error", err.Error()))
		st.recordFailure(NodeClassifier, err)
		st.Classification = ClassificationPlacementTopic
		st.Rejected = false
		st.Topic = st.Query
		return
	}

	st.Classification = v.Classification
	if v.Classification != ClassificationPlacementTopic {
		st.Rejected = true
		st.RejectionReason = rejectionReason(v)
		log.Info("query rejected",
			slog.String("classification", string(v.Classification)),
			slog.String("reason", v.Reason))
		return
	}

	st.Rejected = false
	st.Topic = strings.TrimSpace(v.DetectedTopic)
	if st.Topic == "" {
		st.Topic = st.Query
	}
	log.Debug("query accepted", slog.String("topic", st.Topic))
}

func (c *Classifier) classify(ctx context.Context, query string) (verdict, error) {
	raw, err := c.llm.Complete(ctx, llm.Request{
		Model: c.model,
		Messages: []llm.Message{
			llm.System(classifierSystemPrompt(c.catalog.Context())),
			llm.User(query),
		},
		Temperature: 0,
		MaxTokens:   classifierMaxTokens,
		Stage:       string(NodeClassifier),
	})
	if err != nil {
		return verdict{}, fmt.Errorf("classify: %w", err)
	}
	return parseVerdict(raw)
}

// parseVerdict decodes a single strict JSON verdict, tolerating a code fence.
func parseVerdict(raw string) (verdict, error) {
	var v verdict
	if err := json.Unmarshal([]byte(stripFences(raw)), &v); err != nil {
		return verdict{}, fmt.Errorf("parse verdict: %w", err)
	}
	v.Classification = Classification(strings.ToLower(strings.TrimSpace(string(v.Classification))))
	if !v.Classification.Valid() {
		return verdict{}, fmt.Errorf("parse verdict: %w %q", ErrUnknownClassification, v.Classification)
	}
	return v, nil
}

func rejectionReason(v verdict) string {
	var msg string
	if v.Classification == ClassificationHarmful {
		msg = HarmfulMarker + ": this request looks harmful or unsafe, so it can't be answered."
	} else {
		msg = IrrelevantMarker + ": this tutor only covers placement preparation topics."
	}
	if reason := strings.TrimSpace(v.Reason); reason != "" {
		msg += " " + reason
	}
	if v.Classification == ClassificationIrrelevant {
		msg += " Try asking about data structures, DBMS, operating systems, networks, OOP, web development or system design."
	}
	return msg
}
