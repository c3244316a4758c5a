package providers

import (
	"context"
	"errors"
	"testing"

	"dashchat/pkg/ai"
	"dashchat/pkg/config"
)

func TestOpenAIBuildChatParams(t *testing.T) {
	p, err := NewOpenAIProvider(ai.ProviderConfig{Type: ai.ProviderOpenAI, Config: config.Default()})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error: %v", err)
	}
	provider := p.(*OpenAIProvider)

	tests := []struct {
		name    string
		req     ai.ChatRequest
		wantErr bool
	}{
		{"valid", ai.ChatRequest{Messages: []ai.Message{{Role: "user", Content: "hi"}}}, false},
		{"no messages", ai.ChatRequest{}, true},
		{"bad role", ai.ChatRequest{Messages: []ai.Message{{Role: "tool", Content: "x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.buildChatParams(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("buildChatParams() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpenAIRejectsMissingKey(t *testing.T) {
	p, err := NewOpenAIProvider(ai.ProviderConfig{Type: ai.ProviderOpenAI, Config: config.Default()})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error: %v", err)
	}

	_, err = p.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "user", Content: "hi"}},
	})
	if !errors.Is(err, ai.ErrAuth) {
		t.Errorf("Expected ErrAuth for missing key, got %v", err)
	}
}

func TestGoogleBuildRequest(t *testing.T) {
	p, err := NewGoogleProvider(ai.ProviderConfig{Type: ai.ProviderGoogle, Config: config.Default()})
	if err != nil {
		t.Fatalf("NewGoogleProvider() error: %v", err)
	}
	provider := p.(*GoogleProvider)

	model, contents, cfg, err := provider.buildRequest(ai.ChatRequest{
		Model: "gemini-2.0-flash",
		Messages: []ai.Message{
			{Role: "system", Content: "be helpful"},
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("buildRequest() error: %v", err)
	}

	if model != "gemini-2.0-flash" {
		t.Errorf("Expected requested model, got %q", model)
	}
	if len(contents) != 2 {
		t.Errorf("Expected 2 contents (system folded out), got %d", len(contents))
	}
	if cfg.SystemInstruction == nil {
		t.Error("Expected system instruction from system message")
	}
}

func TestGoogleBuildRequestSystemOnly(t *testing.T) {
	p, _ := NewGoogleProvider(ai.ProviderConfig{Type: ai.ProviderGoogle, Config: config.Default()})
	provider := p.(*GoogleProvider)

	_, _, _, err := provider.buildRequest(ai.ChatRequest{
		Messages: []ai.Message{{Role: "system", Content: "be helpful"}},
	})
	if err == nil {
		t.Error("Expected error when only system messages are present")
	}
}

func TestGoogleRejectsMissingKey(t *testing.T) {
	p, _ := NewGoogleProvider(ai.ProviderConfig{Type: ai.ProviderGoogle, Config: config.Default()})

	_, err := p.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "user", Content: "hi"}},
	})
	if !errors.Is(err, ai.ErrAuth) {
		t.Errorf("Expected ErrAuth for missing key, got %v", err)
	}
}
