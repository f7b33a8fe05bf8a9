package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"

	"solverpro/internal/llm"
	"solverpro/internal/models"
)

// Client represents a Gemini LLM client
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: ProviderName,
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// AnalysisSchema is the structured output contract for problem analysis.
func AnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"complexity": {
				Type:        genai.TypeString,
				Description: "Complexity level: simple, medium, or complex",
				Enum:        models.ValidComplexitiesList(),
			},
			"subject": {
				Type:        genai.TypeString,
				Description: "Academic subject (e.g., Mathematics, Physics, Chemistry)",
			},
			"estimatedMinutes": {
				Type:        genai.TypeNumber,
				Description: "Estimated time to solve in minutes",
			},
			"price": {
				Type:        genai.TypeNumber,
				Description: "Suggested price in PEN",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "A brief technical description of the problem content",
			},
		},
		Required:         []string{"complexity", "subject", "estimatedMinutes", "price", "description"},
		PropertyOrdering: []string{"complexity", "subject", "estimatedMinutes", "price", "description"},
	}
}

// sends the image with the analysis schema and returns the JSON text
func (c *Client) AnalyzeImage(ctx context.Context, req *models.ImageAnalysisRequest) (*models.GenerationResponse, error) {
	startTime := time.Now()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(req.Image, req.MimeType),
			genai.NewPartFromText(req.Prompt),
		}, genai.RoleUser),
	}
	generateConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   AnalysisSchema(),
	}
	if req.SystemInstruction != "" {
		generateConfig.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.config.Model, contents, generateConfig)
	if err != nil {
		return nil, classifyError(err)
	}

	// Extract the response text
	if result == nil {
		return nil, &llm.ProviderError{
			Provider: ProviderName,
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, &llm.ProviderError{
			Provider: ProviderName,
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	processingTime := time.Since(startTime).Milliseconds()

	return &models.GenerationResponse{
		Content:   text,
		RequestID: req.RequestID,
		Metadata: models.GenerationMetadata{
			ProcessingTime: int(processingTime),
			Provider:       ProviderName,
			Model:          c.config.Model,
		},
	}, nil
}

func (c *Client) GetProviderName() string {
	return ProviderName
}

func classifyError(err error) *llm.ProviderError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &llm.ProviderError{Provider: ProviderName, Code: llm.ErrCodeTimeout, Message: "Request timed out", Err: err}
	case isRateLimitError(err):
		return &llm.ProviderError{Provider: ProviderName, Code: llm.ErrCodeRateLimit, Message: "Rate limit exceeded", Err: err}
	default:
		return &llm.ProviderError{Provider: ProviderName, Code: llm.ErrCodeServiceDown, Message: "Failed to analyze image", Err: err}
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota")
}
