package ai

import (
	"context"
	"testing"

	"dashchat/pkg/config"
)

type stubProvider struct{}

func (stubProvider) CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	return ChatResponse{Content: "ok"}, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(ProviderInfo{Type: ProviderOpenAI, Name: "OpenAI"}, func(cfg ProviderConfig) (Provider, error) {
		return stubProvider{}, nil
	})

	if !r.IsRegistered(ProviderOpenAI) {
		t.Error("Expected openai to be registered")
	}

	p, err := r.GetProvider(ProviderConfig{Type: ProviderOpenAI})
	if err != nil {
		t.Fatalf("GetProvider() error: %v", err)
	}
	if p == nil {
		t.Fatal("Expected provider instance")
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	r := NewRegistry()
	if _, err := r.GetProvider(ProviderConfig{Type: "mystery"}); err == nil {
		t.Error("Expected error for unknown provider type")
	}
}

func TestRegistryListProviders(t *testing.T) {
	r := NewRegistry()
	r.Register(ProviderInfo{Type: ProviderOpenAI, Name: "OpenAI"}, func(cfg ProviderConfig) (Provider, error) {
		return stubProvider{}, nil
	})
	r.Register(ProviderInfo{Type: ProviderGoogle, Name: "Google"}, func(cfg ProviderConfig) (Provider, error) {
		return stubProvider{}, nil
	})

	if got := len(r.ListProviders()); got != 2 {
		t.Errorf("Expected 2 providers, got %d", got)
	}
}

func TestValidateProviderType(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"openai", true},
		{"google", true},
		{"anthropic", false},
		{"", false},
	}

	for _, tt := range tests {
		if _, ok := ValidateProviderType(tt.input); ok != tt.ok {
			t.Errorf("ValidateProviderType(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
	}
}

func TestGetProviderFromConfigFallsBackToOpenAI(t *testing.T) {
	r := NewRegistry()
	r.Register(ProviderInfo{Type: ProviderOpenAI, Name: "OpenAI"}, func(cfg ProviderConfig) (Provider, error) {
		return stubProvider{}, nil
	})

	old := DefaultRegistry
	DefaultRegistry = r
	defer func() { DefaultRegistry = old }()

	cfg := config.Default()
	cfg.Server.LLMProvider = "not-a-provider"

	if _, err := GetProviderFromConfig(cfg); err != nil {
		t.Errorf("Expected fallback to openai, got error: %v", err)
	}
}
