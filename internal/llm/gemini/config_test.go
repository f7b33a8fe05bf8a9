package gemini

import (
	"testing"

	"solverpro/internal/llm"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "custom")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}

	if cfg.APIKey != "key" || cfg.Model != "custom" {
		t.Fatalf("unexpected config values: %+v", cfg)
	}
}

func TestNewConfigDefaultModel(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Model != "gemini-3-flash-preview" {
		t.Fatalf("unexpected default model %s", cfg.Model)
	}
}

func TestNewConfigMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error when API key missing")
	}
}

func TestRegisteredFactoryWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	provider, err := llm.NewProvider(ProviderName)
	if err == nil {
		t.Fatal("expected error when API key missing")
	}
	if provider != nil {
		t.Fatalf("expected nil provider, got %#v", provider)
	}
}
