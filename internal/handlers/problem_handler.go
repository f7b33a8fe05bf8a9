package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"solverpro/internal/middleware"
	"solverpro/internal/models"
	"solverpro/internal/submission"
	"solverpro/internal/utils"
)

type Submitter interface {
	Submit(ctx context.Context, in submission.Input) (*models.ProblemRecord, error)
}

type ProblemHandler struct {
	submitter Submitter
	logger    *zap.Logger
}

func NewProblemHandler(submitter Submitter, logger *zap.Logger) *ProblemHandler {
	return &ProblemHandler{
		submitter: submitter,
		logger:    logger,
	}
}

func (h *ProblemHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitProblemRequest](r)

	record, err := h.submitter.Submit(r.Context(), submission.Input{
		StudentName:     req.StudentName,
		Phone:           req.Phone,
		Image:           req.Image,
		PackageQuantity: req.PackageQuantity,
		AnalysisID:      req.AnalysisID,
	})
	if err != nil {
		var errResp *models.ErrorResponse
		if errors.As(err, &errResp) {
			utils.JSON(w, http.StatusBadRequest, *errResp)
			return
		}
		h.logger.Error("Failed to submit problem", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Could not save the problem, please try again",
		})
		return
	}

	utils.JSON(w, http.StatusCreated, record)
}
