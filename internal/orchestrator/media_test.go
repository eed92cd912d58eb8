package orchestrator

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"placement-tutor/internal/artifact"
	"placement-tutor/internal/platform/logger"
	"placement-tutor/internal/render"
)

const svgPrefix = "data:image/svg+xml;base64,"

type failingEmitter struct{}

func (failingEmitter) Emit(string, []byte) (string, error) {
	return "", errors.New("disk full")
}

func contentDoneState() *PipelineState {
	st := NewPipelineState("bst", 3)
	st.Classification = ClassificationPlacementTopic
	st.Topic = "Binary Search Trees"
	st.Markdown = notesMD
	return st
}

func runMedia(f *fakeLLM, st *PipelineState, emitter artifact.Emitter, opts ...MediaOption) {
	NewMedia(f, emitter, "m", logger.Discard(), opts...).Run(context.Background(), st)
}

func decodeSVG(t *testing.T, url string) string {
	t.Helper()
	if !strings.HasPrefix(url, svgPrefix) {
		t.Fatalf("image url %q is not an SVG data URI", url)
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, svgPrefix))
	if err != nil {
		t.Fatalf("decode data uri: %v", err)
	}
	return string(b)
}

func TestMedia_success(t *testing.T) {
	f := newFakeLLM()
	st := contentDoneState()
	runMedia(f, st, nil)

	if st.MediaFailed || len(st.Errors) != 0 {
		t.Fatalf("unexpected failure: %+v", st.Errors)
	}
	svg := decodeSVG(t, st.ImageURL)
	if !strings.Contains(svg, "Binary Search Trees") || !strings.Contains(svg, "BST property") {
		t.Error("svg should contain the generated metadata")
	}
	if st.AudioText != scriptText {
		t.Errorf("audio text = %q", st.AudioText)
	}

	req, _ := f.request(subtaskNarration)
	if !strings.Contains(systemPrompt(req), "450 words") {
		t.Errorf("narration should target duration*150 words: %q", systemPrompt(req))
	}
	req, _ = f.request(subtaskVisual)
	if !strings.Contains(systemPrompt(req), `"Binary Search Trees"`) {
		t.Error("visual prompt should name the topic")
	}
}

func TestMedia_unparseable_metadata_uses_default_card(t *testing.T) {
	f := newFakeLLM().set(subtaskVisual, reply{out: "I cannot produce JSON today."})
	st := contentDoneState()
	runMedia(f, st, nil)

	if st.MediaFailed {
		t.Fatal("a default card is not a failure")
	}
	svg := decodeSVG(t, st.ImageURL)
	want := string(render.Render(render.DefaultMetadata("Binary Search Trees")))
	if svg != want {
		t.Error("expected the default card for the topic")
	}
}

func TestMedia_independent_failures(t *testing.T) {
	t.Run("visual_fails", func(t *testing.T) {
		f := newFakeLLM().set(subtaskVisual, reply{err: errProviderDown})
		st := contentDoneState()
		runMedia(f, st, nil)

		if !st.MediaFailed || st.ImageURL != "" {
			t.Fatalf("visual failure not reported: %+v", st)
		}
		if st.AudioText != scriptText {
			t.Errorf("narration must survive a visual failure, got %q", st.AudioText)
		}
		if len(st.Errors) != 1 || st.Errors[0].Stage != subtaskVisual {
			t.Errorf("errors = %+v", st.Errors)
		}
	})

	t.Run("narration_fails", func(t *testing.T) {
		f := newFakeLLM().set(subtaskNarration, reply{err: errProviderDown})
		st := contentDoneState()
		runMedia(f, st, nil)

		if !st.MediaFailed || st.AudioText != "" {
			t.Fatalf("narration failure not reported: %+v", st)
		}
		decodeSVG(t, st.ImageURL)
		if len(st.Errors) != 1 || st.Errors[0].Stage != subtaskNarration {
			t.Errorf("errors = %+v", st.Errors)
		}
	})

	t.Run("both_fail", func(t *testing.T) {
		f := newFakeLLM().
			set(subtaskVisual, reply{err: errProviderDown}).
			set(subtaskNarration, reply{out: "  "})
		st := contentDoneState()
		runMedia(f, st, nil)

		if !st.MediaFailed || st.ImageURL != "" || st.AudioText != "" || len(st.Errors) != 2 {
			t.Errorf("unexpected state: %+v", st)
		}
	})

	t.Run("sub_task_panic", func(t *testing.T) {
		f := newFakeLLM().set(subtaskNarration, reply{panic: true})
		st := contentDoneState()
		runMedia(f, st, nil)

		if !st.MediaFailed || st.ImageURL == "" {
			t.Errorf("panic in narration should only fail narration: %+v", st)
		}
	})
}

func TestMedia_emit_failure_is_visual_failure(t *testing.T) {
	f := newFakeLLM()
	st := contentDoneState()
	runMedia(f, st, failingEmitter{})

	if !st.MediaFailed || st.ImageURL != "" || st.AudioText != scriptText {
		t.Errorf("unexpected state: %+v", st)
	}
}

func TestMedia_store_emitter(t *testing.T) {
	repo := artifact.NewRepository(4)
	f := newFakeLLM()
	st := contentDoneState()
	runMedia(f, st, artifact.StoreEmitter{Repo: repo, BasePath: "/api/artifacts"})

	if !strings.HasPrefix(st.ImageURL, "/api/artifacts/") {
		t.Fatalf("image url = %q", st.ImageURL)
	}
	a, err := repo.Get(artifact.ID(strings.TrimPrefix(st.ImageURL, "/api/artifacts/")))
	if err != nil || a.ContentType != render.ContentType {
		t.Errorf("stored artifact = %+v, %v", a, err)
	}
}

func TestMedia_noops(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		f := newFakeLLM()
		st := contentDoneState()
		st.Rejected = true
		runMedia(f, st, nil)
		if len(f.stages()) != 0 || st.ImageURL != "" {
			t.Error("rejected state must not reach media")
		}
	})
	t.Run("no_markdown", func(t *testing.T) {
		f := newFakeLLM()
		st := contentDoneState()
		st.Markdown = ""
		runMedia(f, st, nil)
		if len(f.stages()) != 0 || st.MediaFailed {
			t.Error("media without notes should be a no-op")
		}
	})
	t.Run("skip_on_degraded", func(t *testing.T) {
		f := newFakeLLM()
		st := contentDoneState()
		st.ContentDegraded = true
		runMedia(f, st, nil, WithSkipOnDegraded(true))
		if len(f.stages()) != 0 {
			t.Error("degraded content should skip media when configured")
		}
	})
	t.Run("degraded_runs_by_default", func(t *testing.T) {
		f := newFakeLLM()
		st := contentDoneState()
		st.ContentDegraded = true
		runMedia(f, st, nil)
		if st.ImageURL == "" || st.AudioText == "" {
			t.Error("media should still run on degraded content by default")
		}
	})
}

func TestMedia_narration_uses_excerpt(t *testing.T) {
	f := newFakeLLM()
	st := contentDoneState()
	st.Markdown = strings.Repeat("é", narrationExcerptRunes+500)
	runMedia(f, st, nil)

	req, _ := f.request(subtaskNarration)
	if n := len([]rune(userPrompt(req))); n != narrationExcerptRunes {
		t.Errorf("narration input has %d runes, want %d", n, narrationExcerptRunes)
	}
}

func TestParseImageMetadata(t *testing.T) {
	res := parseImageMetadata("Here:\n```json\n" + visualJSON + "\n```")
	if res.Err != nil {
		t.Fatalf("parse: %v", res.Err)
	}
	meta := res.Resolve("x")
	if meta.Category != render.CategoryDSA || len(meta.KeyConcepts) != 4 {
		t.Errorf("meta = %+v", meta)
	}
	if !strings.Contains(meta.CodeSnippet, `\n`) && !strings.Contains(meta.CodeSnippet, "\n") {
		t.Errorf("snippet lost its line break: %q", meta.CodeSnippet)
	}

	bad := parseImageMetadata(`{"title": 7}`)
	if bad.Err == nil {
		t.Fatal("expected decode error")
	}
	if bad.Resolve("Heaps").Title != "Heaps" {
		t.Error("failed parse should resolve to the default card")
	}
}
