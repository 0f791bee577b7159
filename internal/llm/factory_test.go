package llm

import (
	"testing"

	"scriptgen/internal/config"
)

func TestFactory_CreateOpenAI(t *testing.T) {
	f := NewFactory(&config.Config{OpenAIAPIKey: "test-key", OpenAIModel: "gpt-4o-mini"})

	client, err := f.CreateClient("openai", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if client == nil {
		t.Fatal("Expected client instance")
	}
	if _, ok := client.(*OpenAIClient); !ok {
		t.Errorf("Expected OpenAI client, got %T", client)
	}
}

func TestFactory_ProviderCaseInsensitive(t *testing.T) {
	f := NewFactory(&config.Config{OpenAIAPIKey: "test-key"})

	if _, err := f.CreateClient("OpenAI", "gpt-4o-mini"); err != nil {
		t.Errorf("Expected case-insensitive provider match, got %v", err)
	}
}

func TestFactory_UnknownProvider(t *testing.T) {
	f := NewFactory(&config.Config{})

	if _, err := f.CreateClient("gemini", "model"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
