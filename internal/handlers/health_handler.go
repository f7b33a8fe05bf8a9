package handlers

import (
	"context"
	"net/http"
	"time"

	"solverpro/internal/config"
	"solverpro/internal/prompts"
	"solverpro/internal/utils"
)

const serviceName = "solverpro"

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "degraded" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

// Pinger is a dependency that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderInfo reports the analysis backend, "" when none is configured.
type ProviderInfo interface {
	ProviderName() string
}

type HealthHandler struct {
	storage       Pinger
	provider      ProviderInfo
	promptManager prompts.PromptProvider
	config        *config.Config
}

func NewHealthHandler(storage Pinger, provider ProviderInfo, promptManager prompts.PromptProvider, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		storage:       storage,
		provider:      provider,
		promptManager: promptManager,
		config:        cfg,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	// submissions need durable storage
	if handler.storage == nil {
		checks["storage"] = ReadinessCheck{Status: "failed", Message: "Storage not initialized"}
		allChecksPass = false
	} else {
		ctx, cancel := context.WithTimeout(request.Context(), 2*time.Second)
		err := handler.storage.Ping(ctx)
		cancel()
		if err != nil {
			checks["storage"] = ReadinessCheck{Status: "failed", Message: err.Error()}
			allChecksPass = false
		} else {
			checks["storage"] = ReadinessCheck{Status: "ok"}
		}
	}

	// students can still submit without analysis
	if handler.provider == nil || handler.provider.ProviderName() == "" {
		checks["provider"] = ReadinessCheck{
			Status:  "degraded",
			Message: "AI provider not initialized, analysis unavailable",
		}
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	if handler.promptManager == nil {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "Prompt manager not initialized",
		}
		allChecksPass = false
	} else if len(handler.promptManager.GetTemplates()) == 0 {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "No prompt templates loaded",
		}
		allChecksPass = false
	} else {
		checks["prompt_manager"] = ReadinessCheck{Status: "ok"}
	}

	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{
			Status:  "failed",
			Message: "Configuration not loaded",
		}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: serviceName,
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
