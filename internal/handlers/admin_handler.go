package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"solverpro/internal/middleware"
	"solverpro/internal/models"
	"solverpro/internal/utils"
)

type Dashboard interface {
	View(statusFilter, searchText string) models.DashboardResponse
	Stats() models.DashboardStats
	SetStatus(ctx context.Context, id string, status models.ProblemStatus) (bool, error)
	TogglePaid(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	Contact(id string) (string, bool)
}

// AdminHandler serves the dashboard. Mutations answer 204 whether or not
// the id exists.
type AdminHandler struct {
	dashboard Dashboard
	logger    *zap.Logger
}

func NewAdminHandler(dashboard Dashboard, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *AdminHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.StatusFilterAll
	}
	if !models.IsValidStatusFilter(status) {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_status",
			Message: "Status filter must be one of: all, pending, in-progress, completed",
		})
		return
	}

	utils.JSON(w, http.StatusOK, h.dashboard.View(status, r.URL.Query().Get("search")))
}

func (h *AdminHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.dashboard.Stats())
}

func (h *AdminHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateStatusRequest](r)
	id := chi.URLParam(r, "id")

	found, err := h.dashboard.SetStatus(r.Context(), id, req.Status)
	h.finishMutation(w, "status", id, found, err)
}

func (h *AdminHandler) TogglePaidHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := h.dashboard.TogglePaid(r.Context(), id)
	h.finishMutation(w, "paid", id, found, err)
}

func (h *AdminHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := h.dashboard.Remove(r.Context(), id)
	h.finishMutation(w, "delete", id, found, err)
}

func (h *AdminHandler) ContactHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	url, ok := h.dashboard.Contact(id)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Problem not found",
		})
		return
	}
	utils.JSON(w, http.StatusOK, models.ContactResponse{URL: url})
}

func (h *AdminHandler) finishMutation(w http.ResponseWriter, op, id string, found bool, err error) {
	if err != nil {
		h.logger.Error("Failed to persist change",
			zap.String("op", op), zap.String("problem_id", id), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Could not save the change, please try again",
		})
		return
	}
	if !found {
		h.logger.Debug("Mutation on unknown problem ignored", zap.String("op", op), zap.String("problem_id", id))
	}
	utils.NoContent(w)
}
