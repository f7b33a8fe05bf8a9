// Package analysis turns an uploaded problem photo into a suggested
// subject, complexity and price through the configured LLM provider.
package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"solverpro/internal/llm"
	"solverpro/internal/models"
	"solverpro/internal/prompts"
)

const (
	promptMode    = "analyze"
	promptVariant = "default"

	minSuggestedPrice = 2
	maxSuggestedPrice = 20
)

// PromptBuilder renders the instruction and prompt text.
type PromptBuilder interface {
	prompts.PromptProvider
	BuildSystemInstruction(mode string, data interface{}) (string, error)
}

// Result is a successful analysis plus call metadata.
type Result struct {
	RequestID string
	Analysis  *models.AIAnalysis
	Metadata  models.GenerationMetadata
}

type Analyzer struct {
	provider llm.Provider
	prompts  PromptBuilder
	cache    *ResultCache
	guard    *draftGuard
	logger   *zap.Logger
}

func NewAnalyzer(provider llm.Provider, promptBuilder PromptBuilder, cache *ResultCache, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		provider: provider,
		prompts:  promptBuilder,
		cache:    cache,
		guard:    newDraftGuard(),
		logger:   logger,
	}
}

// Analyze sends one image to the provider and parses the fixed-shape
// result. Every failure is an *AnalysisError except ErrAnalysisInFlight.
// There is exactly one attempt.
func (a *Analyzer) Analyze(ctx context.Context, requestID, draftID, imageBase64 string) (*Result, error) {
	if a.provider == nil {
		return nil, &AnalysisError{Reason: ReasonProvider, Message: "no AI provider configured"}
	}

	release, err := a.guard.acquire(draftID)
	if err != nil {
		return nil, err
	}
	defer release()

	image, mimeType, err := DecodeImage(imageBase64)
	if err != nil {
		return nil, err
	}

	system, err := a.prompts.BuildSystemInstruction(promptMode, map[string]interface{}{
		"MinPrice": minSuggestedPrice,
		"MaxPrice": maxSuggestedPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build system instruction: %w", err)
	}
	prompt, err := a.prompts.BuildPrompt(promptMode, promptVariant, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	response, err := a.provider.AnalyzeImage(ctx, &models.ImageAnalysisRequest{
		RequestID:         requestID,
		SystemInstruction: system,
		Prompt:            prompt,
		Image:             image,
		MimeType:          mimeType,
	})
	if err != nil {
		a.logger.Error("AI provider error", zap.Error(err), zap.String("request_id", requestID))
		return nil, &AnalysisError{Reason: ReasonProvider, Message: "provider call failed", Err: err}
	}
	if response == nil {
		return nil, &AnalysisError{Reason: ReasonEmpty, Message: "no response text"}
	}

	parsed, err := ParseAnalysis(response.Content)
	if err != nil {
		a.logger.Warn("Unusable analysis response", zap.Error(err), zap.String("request_id", requestID))
		return nil, err
	}

	if a.cache != nil {
		a.cache.Set(requestID, parsed)
	}

	a.logger.Info("Problem analysed",
		zap.String("request_id", requestID),
		zap.String("provider", a.provider.GetProviderName()),
		zap.String("complexity", string(parsed.Complexity)),
		zap.Int("processing_time_ms", response.Metadata.ProcessingTime))

	return &Result{
		RequestID: requestID,
		Analysis:  parsed,
		Metadata:  response.Metadata,
	}, nil
}

// Cached returns a previously produced analysis by request id.
func (a *Analyzer) Cached(requestID string) (*models.AIAnalysis, bool) {
	if a.cache == nil || requestID == "" {
		return nil, false
	}
	return a.cache.Get(requestID)
}

// Forget drops a cached analysis so its id cannot be attached twice.
func (a *Analyzer) Forget(requestID string) {
	if a.cache == nil || requestID == "" {
		return
	}
	a.cache.Delete(requestID)
}

// ProviderName reports the backing provider, empty when none is configured.
func (a *Analyzer) ProviderName() string {
	if a.provider == nil {
		return ""
	}
	return a.provider.GetProviderName()
}
