package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"placement-tutor/internal/llm"
)

const contentTemperature = 0.7

// errEmptyCompletion marks a call that succeeded but returned only whitespace.
var errEmptyCompletion = errors.New("model returned empty completion")

// lengthProfile is the target size and depth for a reading duration.
type lengthProfile struct {
	Words int
	Depth string
}

var durationProfiles = map[int]lengthProfile{
	2: {Words: 300, Depth: "concise"},
	3: {Words: 450, Depth: "moderate"},
	4: {Words: 600, Depth: "detailed"},
	5: {Words: 750, Depth: "comprehensive"},
}

// profileFor maps a duration to its profile, falling back to the 3-minute entry.
func profileFor(duration int) lengthProfile {
	if p, ok := durationProfiles[duration]; ok {
		return p
	}
	return durationProfiles[DefaultDuration]
}

// Content writes the long-form Markdown study notes.
type Content struct {
	llm     llm.Completer
	catalog CatalogSource
	model   string
	log     *slog.Logger
}

// NewContent returns the content stage.
func NewContent(c llm.Completer, catalog CatalogSource, model string, log *slog.Logger) *Content {
	return &Content{llm: c, catalog: catalog, model: model, log: log}
}

// Name implements Stage.
func (c *Content) Name() NodeName { return NodeContent }

// Run implements Stage. A failed call is replaced by an apology fragment so
// the pipeline can still finish.
func (c *Content) Run(ctx context.Context, st *PipelineState) {
	if st.Rejected {
		return
	}
	log := loggerFrom(ctx, c.log)
	topic := st.Topic
	if topic == "" {
		topic = st.Query
	}

	profile := profileFor(st.Duration)
	raw, err := c.llm.Complete(ctx, llm.Request{
		Model: c.model,
		Messages: []llm.Message{
			llm.System(contentSystemPrompt(c.catalog.Context(), profile)),
			llm.User(contentUserPrompt(topic)),
		},
		Temperature: contentTemperature,
		MaxTokens:   profile.Words * 3,
		Stage:       string(NodeContent),
	})
	if err == nil && strings.TrimSpace(raw) == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		log.Warn("content generation failed, using placeholder",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
		st.recordFailure(NodeContent, err)
		st.Markdown = degradedMarkdown(topic, err)
		st.ContentDegraded = true
		return
	}

	st.Markdown = strings.TrimSpace(raw)
	log.Debug("content generated",
		slog.String("topic", topic),
		slog.Int("target_words", profile.Words),
		slog.Int("words", len(strings.Fields(st.Markdown))))
}
