// Package agent implements the voice assistant: an OpenAI-compatible
// chat-completions client plus a service that keeps conversation history in
// the session store and lets the model call a small set of CRM tools.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type ToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// Tool describes a function the model may call, in the chat-completions
// tool schema.
type Tool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Parameters  json.RawMessage `json:"parameters"`
	} `json:"function"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Tools    []Tool        `json:"tools,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Completer abstracts the chat-completions endpoint so the service can be
// tested with a scripted model.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage, tools []Tool) (*ChatMessage, error)
}

type LLMClient struct {
	http   *resty.Client
	model  string
	logger zerolog.Logger
}

func NewLLMClient(baseURL, apiKey, model string, logger zerolog.Logger) *LLMClient {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &LLMClient{http: http, model: model, logger: logger}
}

func (c *LLMClient) Complete(ctx context.Context, messages []ChatMessage, tools []Tool) (*ChatMessage, error) {
	var result chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{Model: c.model, Messages: messages, Tools: tools}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if resp.IsError() {
		if result.Error != nil && result.Error.Message != "" {
			return nil, fmt.Errorf("chat completion: %s (status %d)", result.Error.Message, resp.StatusCode())
		}
		return nil, fmt.Errorf("chat completion: unexpected status %d", resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty choices")
	}
	return &result.Choices[0].Message, nil
}
