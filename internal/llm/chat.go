package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	chatCompletionsPath = "/chat/completions"
	maxErrorBody        = 512
)

// ChatClient talks to any OpenAI-compatible chat completions endpoint
// (Groq, OpenAI, a local gateway).
type ChatClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewChatClient returns a client for baseURL (e.g. "https://api.groq.com/openai/v1").
// timeout bounds every single call.
func NewChatClient(baseURL, apiKey string, timeout time.Duration) (*ChatClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChatClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete implements Completer.
func (c *ChatClient) Complete(ctx context.Context, req Request) (string, error) {
	bodyBytes, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat completion response: %w", err)
	}

	var parsed chatResponse
	if jsonErr := json.Unmarshal(respBytes, &parsed); jsonErr != nil {
		if resp.StatusCode >= 300 {
			return "", &ProviderError{StatusCode: resp.StatusCode, Message: truncate(string(respBytes), maxErrorBody)}
		}
		return "", fmt.Errorf("parse chat completion response: %w", jsonErr)
	}
	if parsed.Error != nil {
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: parsed.Error.Message}
	}
	if resp.StatusCode >= 300 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: truncate(string(respBytes), maxErrorBody)}
	}
	if len(parsed.Choices) == 0 {
		return "", ErrNoChoices
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
