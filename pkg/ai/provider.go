package ai

import (
	"context"
	"errors"
)

// ErrAuth indicates the upstream LLM rejected the supplied API key.
var ErrAuth = errors.New("llm rejected api key")

// Message represents a single chat message for LLM requests.
type Message struct {
	Role    string
	Content string
}

// ChatRequest defines the input to an LLM chat completion. APIKey is
// supplied per request because each dashboard user brings their own key.
type ChatRequest struct {
	APIKey      string
	Model       string
	Messages    []Message
	Temperature *float64
	MaxTokens   *int
}

// ChatResponse is a normalized response from an LLM.
type ChatResponse struct {
	Content string
	Model   string
}

// Provider defines the LLM interface used by the assistant daemon.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
