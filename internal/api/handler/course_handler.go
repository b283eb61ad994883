package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tedumasters/internal/api/middleware"
	"tedumasters/internal/app/service"
	"tedumasters/internal/common"
	"tedumasters/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCourses)
	r.Get("/{courseID}", h.getCourse)

	r.Group(func(creators chi.Router) {
		creators.Use(middleware.Authenticator)
		creators.Use(middleware.RequireRole(model.RoleInstructor, model.RoleAdmin))
		creators.Post("/", h.createCourse)
	})
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	courses, err := h.courseService.ListCourses(r.Context(), category, page, pageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	course, err := h.courseService.GetCourse(r.Context(), courseID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, course)
}
