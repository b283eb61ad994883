package handler

import (
	"encoding/json"
	"net/http"

	"tedumasters/internal/api/middleware"
	"tedumasters/internal/app/service"
	"tedumasters/internal/common"

	"github.com/go-chi/chi/v5"
)

type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

func (h *EnrollmentHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.enroll)
	r.Get("/user", h.listForUser)
}

func (h *EnrollmentHandler) enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	enrollments, err := h.enrollmentService.ListForUser(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, enrollments)
}
