package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"placement-tutor/internal/artifact"
	"placement-tutor/internal/llm"
	"placement-tutor/internal/render"
)

const (
	visualTemperature    = 0.3
	narrationTemperature = 0.5
	visualMaxTokens      = 700

	// narrationExcerptRunes is how much of the notes the narration is based on.
	narrationExcerptRunes = 3000
	wordsPerMinute        = 150
)

// Sub-task labels used in logs, metrics and the error list.
const (
	subtaskVisual    = "media_visual"
	subtaskNarration = "media_narration"
)

var errNoJSONObject = errors.New("no JSON object in response")

// Media produces the study-card image and the narration script. The two
// sub-tasks run concurrently and fail independently.
type Media struct {
	llm            llm.Completer
	emitter        artifact.Emitter
	model          string
	skipOnDegraded bool
	log            *slog.Logger
}

// MediaOption configures a Media stage.
type MediaOption func(*Media)

// WithSkipOnDegraded makes the stage a no-op when the content stage fell back
// to its placeholder.
func WithSkipOnDegraded(skip bool) MediaOption {
	return func(m *Media) { m.skipOnDegraded = skip }
}

// NewMedia returns the media stage. A nil emitter means data URIs.
func NewMedia(c llm.Completer, emitter artifact.Emitter, model string, log *slog.Logger, opts ...MediaOption) *Media {
	if emitter == nil {
		emitter = artifact.DataURIEmitter{}
	}
	m := &Media{llm: c, emitter: emitter, model: model, log: log}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name implements Stage.
func (m *Media) Name() NodeName { return NodeMedia }

// Run implements Stage. Both sub-tasks are always joined before the state is
// written; MediaFailed is set if either of them failed.
func (m *Media) Run(ctx context.Context, st *PipelineState) {
	if st.Rejected || st.Markdown == "" {
		return
	}
	log := loggerFrom(ctx, m.log)
	if m.skipOnDegraded && st.ContentDegraded {
		log.Info("skipping media for degraded content", slog.String("topic", st.Topic))
		return
	}

	topic := st.Topic
	if topic == "" {
		topic = st.Query
	}

	var (
		imageURL, audioText     string
		visualErr, narrationErr error
		g                       errgroup.Group
	)
	g.Go(func() error {
		visualErr = guard(func() error {
			var err error
			imageURL, err = m.visual(ctx, topic)
			return err
		})
		return nil
	})
	g.Go(func() error {
		narrationErr = guard(func() error {
			var err error
			audioText, err = m.narration(ctx, st.Markdown, st.Duration)
			return err
		})
		return nil
	})
	_ = g.Wait()

	if visualErr != nil {
		log.Warn("visual generation failed", slog.String("topic", topic), slog.String("error", visualErr.Error()))
		st.recordFailure(subtaskVisual, visualErr)
	} else {
		st.ImageURL = imageURL
	}
	if narrationErr != nil {
		log.Warn("narration generation failed", slog.String("topic", topic), slog.String("error", narrationErr.Error()))
		st.recordFailure(subtaskNarration, narrationErr)
	} else {
		st.AudioText = audioText
	}
	st.MediaFailed = visualErr != nil || narrationErr != nil
}

// visual asks for card metadata, renders it and emits the artifact. Only a
// failed model call or emission is an error; unusable metadata falls back to
// the default card.
func (m *Media) visual(ctx context.Context, topic string) (string, error) {
	raw, err := m.llm.Complete(ctx, llm.Request{
		Model: m.model,
		Messages: []llm.Message{
			llm.System(visualSystemPrompt(topic)),
			llm.User("Create the study card JSON for: " + topic),
		},
		Temperature: visualTemperature,
		MaxTokens:   visualMaxTokens,
		Stage:       subtaskVisual,
	})
	if err != nil {
		return "", fmt.Errorf("visual metadata: %w", err)
	}

	res := parseImageMetadata(raw)
	if res.Err != nil {
		loggerFrom(ctx, m.log).Debug("visual metadata unusable, using default card",
			slog.String("topic", topic),
			slog.String("error", res.Err.Error()))
	}
	meta := res.Resolve(topic)

	url, err := m.emitter.Emit(render.ContentType, render.Render(meta))
	if err != nil {
		return "", fmt.Errorf("emit visual: %w", err)
	}
	return url, nil
}

// narration rewrites the start of the notes into a spoken script.
func (m *Media) narration(ctx context.Context, markdown string, duration int) (string, error) {
	words := duration * wordsPerMinute
	raw, err := m.llm.Complete(ctx, llm.Request{
		Model: m.model,
		Messages: []llm.Message{
			llm.System(narrationSystemPrompt(words)),
			llm.User(excerpt(markdown, narrationExcerptRunes)),
		},
		Temperature: narrationTemperature,
		MaxTokens:   words * 2,
		Stage:       subtaskNarration,
	})
	if err != nil {
		return "", fmt.Errorf("narration: %w", err)
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("narration: %w", errEmptyCompletion)
	}
	return text, nil
}

// metadataResult is either valid metadata (Err == nil) or a parse failure.
type metadataResult struct {
	Metadata render.ImageMetadata
	Err      error
}

// Resolve returns the parsed metadata, or the default card on parse failure.
func (r metadataResult) Resolve(topic string) render.ImageMetadata {
	if r.Err != nil {
		return render.DefaultMetadata(topic)
	}
	return r.Metadata.Normalize(topic)
}

// parseImageMetadata decodes the first balanced JSON object in raw.
func parseImageMetadata(raw string) metadataResult {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return metadataResult{Err: errNoJSONObject}
	}
	var meta render.ImageMetadata
	if err := json.Unmarshal([]byte(obj), &meta); err != nil {
		return metadataResult{Err: fmt.Errorf("decode metadata: %w", err)}
	}
	return metadataResult{Metadata: meta}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// guard runs fn and converts a panic into an error so one sub-task cannot
// take the other down.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStagePanic, r)
		}
	}()
	return fn()
}
