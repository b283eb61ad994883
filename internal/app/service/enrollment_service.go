package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tedumasters/internal/common"
	"tedumasters/internal/domain/model"
	"tedumasters/internal/domain/repository"

	"github.com/google/uuid"
)

type EnrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
) *EnrollmentService {
	return &EnrollmentService{enrollmentRepo: enrollmentRepo, courseRepo: courseRepo}
}

type EnrollRequest struct {
	CourseID string `json:"courseId"`
}

// Enroll records the caller in a course. One enrollment per user and course;
// the unique pair constraint backs that up under concurrency.
func (s *EnrollmentService) Enroll(ctx context.Context, userID string, req EnrollRequest) (*model.Enrollment, error) {
	if req.CourseID == "" {
		return nil, common.ErrMissingCourseID
	}
	if _, err := uuid.Parse(req.CourseID); err != nil {
		return nil, common.ErrCourseNotFound
	}

	course, err := s.courseRepo.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseID:   course.ID,
		EnrolledAt: time.Now().UTC(),
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, common.ErrAlreadyEnrolled) || errors.Is(err, common.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}
	enrollment.CourseTitle = &course.Title
	return enrollment, nil
}

func (s *EnrollmentService) ListForUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}
