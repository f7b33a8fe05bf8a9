package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"solverpro/internal/analysis"
	"solverpro/internal/metrics"
	"solverpro/internal/middleware"
	"solverpro/internal/models"
	"solverpro/internal/utils"
)

type Analyzer interface {
	Analyze(ctx context.Context, requestID, draftID, imageBase64 string) (*analysis.Result, error)
}

type AnalysisHandler struct {
	analyzer Analyzer
	logger   *zap.Logger
}

func NewAnalysisHandler(analyzer Analyzer, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.AnalyzeRequest](r)
	requestID := generateRequestID()

	result, err := h.analyzer.Analyze(r.Context(), requestID, req.DraftID, req.Image)
	if err != nil {
		var analysisErr *analysis.AnalysisError
		switch {
		case errors.Is(err, analysis.ErrAnalysisInFlight):
			metrics.ObserveAnalysis(metrics.OutcomeInFlight)
			utils.JSON(w, http.StatusConflict, models.ErrorResponse{
				Code:    "analysis_in_progress",
				Message: "An analysis for this draft is already running",
			})
		case errors.As(err, &analysisErr):
			metrics.ObserveAnalysis(metrics.OutcomeFailed)
			h.logger.Warn("Analysis failed",
				zap.String("request_id", requestID),
				zap.String("reason", analysisErr.Reason),
				zap.Error(err))
			utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
				Code:    "analysis_failed",
				Message: "Could not analyse the image, you can still submit the problem",
				Details: []models.ValidationErrorDetail{{Field: "image", Reason: analysisErr.Reason}},
			})
		default:
			metrics.ObserveAnalysis(metrics.OutcomeFailed)
			h.logger.Error("Analysis error", zap.String("request_id", requestID), zap.Error(err))
			utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
				Code:    "internal_error",
				Message: "Failed to analyse the image",
			})
		}
		return
	}

	metrics.ObserveAnalysis(metrics.OutcomeSuccess)
	utils.JSON(w, http.StatusOK, models.AnalysisResponse{
		RequestID: result.RequestID,
		Analysis:  result.Analysis,
		Metadata:  result.Metadata,
	})
}

func generateRequestID() string {
	return uuid.New().String()
}
