// Package llm defines the single "create completion" contract the pipeline
// depends on, plus provider clients that satisfy it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a completion request. Stage is not sent to the provider; it
// labels the call for logs and metrics.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	Stage       string
}

// Completer creates a text completion.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

var (
	// ErrNoChoices is returned when the provider answers without any completion.
	ErrNoChoices = errors.New("llm: provider returned no choices")

	// ErrMissingAPIKey is returned by constructors when no key is configured.
	ErrMissingAPIKey = errors.New("llm: api key not set")
)

// ProviderError is a non-2xx answer or an error object returned by the provider.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("llm provider error: %s", e.Message)
	}
	return fmt.Sprintf("llm provider error (status %d): %s", e.StatusCode, e.Message)
}

// System and User build messages.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Observer is notified after every completion call.
type Observer func(stage string, took time.Duration, err error)

// Instrument wraps c so each call is reported to observe.
func Instrument(c Completer, observe Observer) Completer {
	if observe == nil {
		return c
	}
	return CompleterFunc(func(ctx context.Context, req Request) (string, error) {
		start := time.Now()
		out, err := c.Complete(ctx, req)
		observe(req.Stage, time.Since(start), err)
		return out, err
	})
}
