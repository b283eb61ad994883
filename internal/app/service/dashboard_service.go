package service

import (
	"context"
	"fmt"

	"tedumasters/internal/domain/model"
	"tedumasters/internal/domain/repository"
)

type DashboardService struct {
	userRepo       repository.UserRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	feedbackRepo   repository.FeedbackRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	feedbackRepo repository.FeedbackRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		feedbackRepo:   feedbackRepo,
	}
}

type StatsResponse struct {
	TotalUsers       int `json:"totalUsers"`
	TotalCourses     int `json:"totalCourses"`
	TotalEnrollments int `json:"totalEnrollments"`
	TotalFeedback    int `json:"totalFeedback"`
}

func (s *DashboardService) Stats(ctx context.Context) (*StatsResponse, error) {
	stats := &StatsResponse{}
	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalCourses, err = s.courseRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}
	if stats.TotalEnrollments, err = s.enrollmentRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}
	if stats.TotalFeedback, err = s.feedbackRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}
	return stats, nil
}

// Progress returns the caller's enrollments with course titles attached.
func (s *DashboardService) Progress(ctx context.Context, userID string) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}
