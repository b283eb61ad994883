package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tedumasters/internal/api"
	"tedumasters/internal/app/service"
	"tedumasters/internal/common/security"
	"tedumasters/internal/domain/repository"
	"tedumasters/internal/platform/config"
	"tedumasters/internal/platform/database"
	"tedumasters/internal/platform/tokenstore"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}
	fmt.Println("Database connected and migrated.")

	// 4. Initialize Redis (token deny list)
	tokenstore.Connect()
	defer tokenstore.Close()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	courseRepo := repository.NewPgCourseRepository(database.DB)
	enrollmentRepo := repository.NewPgEnrollmentRepository(database.DB)
	feedbackRepo := repository.NewPgFeedbackRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	courseService := service.NewCourseService(courseRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, courseRepo)
	dashboardService := service.NewDashboardService(userRepo, courseRepo, enrollmentRepo, feedbackRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, courseService, enrollmentService, feedbackService, dashboardService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
