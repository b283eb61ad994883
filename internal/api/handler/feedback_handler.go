package handler

import (
	"encoding/json"
	"net/http"

	"tedumasters/internal/api/middleware"
	"tedumasters/internal/app/service"
	"tedumasters/internal/common"

	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Get("/course/{courseID}", h.listForCourse)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Post("/", h.submit)
	})
}

func (h *FeedbackHandler) submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	feedback, err := h.feedbackService.Submit(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, feedback)
}

func (h *FeedbackHandler) listForCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	items, err := h.feedbackService.ListForCourse(r.Context(), courseID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, items)
}
