package handler

import (
	"net/http"

	"tedumasters/internal/api/middleware"
	"tedumasters/internal/app/service"
	"tedumasters/internal/common"

	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	// Aggregate totals carry nothing user-specific; only progress needs a
	// principal.
	r.Get("/stats", h.stats)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Get("/progress", h.progress)
	})
}

func (h *DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	enrollments, err := h.dashboardService.Progress(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, enrollments)
}
