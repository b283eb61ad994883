package api

import (
	"context"
	"net/http"
	"time"

	"tedumasters/internal/api/handler"
	"tedumasters/internal/app/service"
	"tedumasters/internal/common"
	"tedumasters/internal/common/security"
	"tedumasters/internal/platform/database"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	courseService *service.CourseService,
	enrollmentService *service.EnrollmentService,
	feedbackService *service.FeedbackService,
	dashboardService *service.DashboardService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token when present and puts claims in context.
	// Authenticator enforces it on protected groups.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Readiness: the User Store is the one shared dependency worth probing.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if database.DB != nil {
			if err := database.DB.PingContext(ctx); err != nil {
				common.RespondWithError(w, http.StatusServiceUnavailable, common.ErrStoreUnavailable.Error())
				return
			}
		}
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService)
		api.Route("/users", userHandler.RegisterRoutes)

		courseHandler := handler.NewCourseHandler(courseService)
		api.Route("/courses", courseHandler.RegisterRoutes)

		enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
		api.Route("/enrollments", enrollmentHandler.RegisterRoutes)

		feedbackHandler := handler.NewFeedbackHandler(feedbackService)
		api.Route("/feedback", feedbackHandler.RegisterRoutes)

		dashboardHandler := handler.NewDashboardHandler(dashboardService)
		api.Route("/dashboard", dashboardHandler.RegisterRoutes)

		testHandler := handler.NewTestHandler()
		api.Route("/test", testHandler.RegisterRoutes)
	})

	return r
}
