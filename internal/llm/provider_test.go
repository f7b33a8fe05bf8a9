package llm

import (
	"context"
	"errors"
	"testing"

	"solverpro/internal/models"
)

type testProvider struct{}

func (testProvider) AnalyzeImage(context.Context, *models.ImageAnalysisRequest) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{Content: "ok"}, nil
}
func (testProvider) GetProviderName() string { return "test" }

func TestProviderErrorError(t *testing.T) {
	err := &ProviderError{Provider: "gemini", Message: "failed"}
	if err.Error() != "gemini error: failed" {
		t.Fatalf("unexpected error message: %s", err.Error())
	}

	detail := errors.New("detail")
	wrapped := &ProviderError{Provider: "gemini", Message: "failed", Err: detail}
	if got := wrapped.Error(); got != "gemini error: failed (detail)" {
		t.Fatalf("unexpected wrapped error message: %s", got)
	}
	if !errors.Is(wrapped, detail) {
		t.Fatal("expected ProviderError to unwrap to its cause")
	}
}

func TestRegisterAndNewProvider(t *testing.T) {
	RegisterProvider("test_provider", func() (Provider, error) {
		return testProvider{}, nil
	})
	defer delete(providers, "test_provider")

	provider, err := NewProvider("test_provider")
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if name := provider.GetProviderName(); name != "test" {
		t.Fatalf("expected provider name test, got %s", name)
	}

	if _, err := NewProvider("missing"); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestRegisterProviderRejectsDuplicates(t *testing.T) {
	RegisterProvider("dup_provider", func() (Provider, error) { return testProvider{}, nil })
	defer delete(providers, "dup_provider")

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	RegisterProvider("dup_provider", func() (Provider, error) { return testProvider{}, nil })
}

func TestProvidersSorted(t *testing.T) {
	RegisterProvider("zz_provider", func() (Provider, error) { return testProvider{}, nil })
	RegisterProvider("aa_provider", func() (Provider, error) { return testProvider{}, nil })
	defer delete(providers, "zz_provider")
	defer delete(providers, "aa_provider")

	names := Providers()
	first, last := -1, -1
	for i, name := range names {
		switch name {
		case "aa_provider":
			first = i
		case "zz_provider":
			last = i
		}
	}
	if first < 0 || last < 0 || first > last {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

type nilPointerProvider struct{}

func (*nilPointerProvider) AnalyzeImage(context.Context, *models.ImageAnalysisRequest) (*models.GenerationResponse, error) {
	return nil, nil
}
func (*nilPointerProvider) GetProviderName() string { return "nil" }

func TestNewProviderFactoryErrorYieldsNil(t *testing.T) {
	RegisterProvider("broken_provider", func() (Provider, error) {
		var p *nilPointerProvider
		return p, errors.New("no key")
	})
	defer delete(providers, "broken_provider")

	provider, err := NewProvider("broken_provider")
	if err == nil {
		t.Fatal("expected factory error")
	}
	if provider != nil {
		t.Fatalf("expected nil provider interface, got %#v", provider)
	}
}
