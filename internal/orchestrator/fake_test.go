package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"

	"placement-tutor/internal/catalog"
	"placement-tutor/internal/llm"
	"placement-tutor/internal/platform/logger"
)

var errProviderDown = errors.New("provider down")

const (
	acceptJSON = `{"classification":"placement_topic","reason":"DSA topic","detectedTopic":"Binary Search Trees"}`
	visualJSON = `{"title":"Binary Search Trees","subtitle":"Ordered lookups","category":"dsa","keyConcepts":["BST property","Inorder","Insert","Delete"],"codeSnippet":"int x = 1;\nreturn x;","interviewTip":"Know the worst case."}`
	notesMD    = "# Binary Search Trees\n\n## Basics\n\n- left < root < right\n\n## Key Takeaways\n\n- O(log n) when balanced"
	scriptText = "Binary search trees keep smaller keys on the left and larger keys on the right."
)

// reply is one scripted answer for a stage.
type reply struct {
	out   string
	err   error
	panic bool
}

// fakeLLM answers by Request.Stage and records every request it saw.
type fakeLLM struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []llm.Request
	block   bool
}

func newFakeLLM() *fakeLLM {
	return &fakeLLM{replies: map[string]reply{
		string(NodeClassifier): {out: acceptJSON},
		string(NodeContent):    {out: notesMD},
		subtaskVisual:          {out: visualJSON},
		subtaskNarration:       {out: scriptText},
	}}
}

func (f *fakeLLM) set(stage string, r reply) *fakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[stage] = r
	return f
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	r := f.replies[req.Stage]
	block := f.block
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if r.panic {
		panic("scripted panic in " + req.Stage)
	}
	return r.out, r.err
}

func (f *fakeLLM) stages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Stage
	}
	return out
}

func (f *fakeLLM) request(stage string) (llm.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.Stage == stage {
			return c, true
		}
	}
	return llm.Request{}, false
}

func systemPrompt(req llm.Request) string {
	for _, m := range req.Messages {
		if m.Role == llm.RoleSystem {
			return m.Content
		}
	}
	return ""
}

func userPrompt(req llm.Request) string {
	var parts []string
	for _, m := range req.Messages {
		if m.Role == llm.RoleUser {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n")
}

func newTestService(f *fakeLLM, opts Options) *Service {
	return NewService(Dependencies{
		LLM:     f,
		Catalog: catalog.Default(),
		Log:     logger.Discard(),
	}, opts)
}
