package llm

import "testing"

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient("ollama", "llama3.2", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	c, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected OpenAIClient, got %T", client)
	}
	if c.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, defaultOllamaBaseURL)
	}
}

func TestNewClient_DefaultsToOllama(t *testing.T) {
	client, err := NewClient("", "llama3.2", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	c, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected OpenAIClient, got %T", client)
	}
	if c.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, defaultOllamaBaseURL)
	}
}

func TestNewClient_LMStudio(t *testing.T) {
	client, err := NewClient("lm-studio", "llama3.2", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	c, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected OpenAIClient, got %T", client)
	}
	if c.baseURL != defaultLMStudioBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, defaultLMStudioBaseURL)
	}
}

func TestNewClient_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewClient("openai", "gpt-4o-mini", ""); err == nil {
		t.Fatal("expected error without OPENAI_API_KEY")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	if _, err := NewClient("openai", "gpt-4o-mini", ""); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestNewClient_EmptyModel(t *testing.T) {
	if _, err := NewClient("ollama", "", ""); err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	if _, err := NewClient("unknown", "model", ""); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
