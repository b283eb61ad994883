package service

import (
	"context"
	"fmt"
	"time"

	"tedumasters/internal/common"
	"tedumasters/internal/domain/model"
	"tedumasters/internal/domain/repository"

	"github.com/google/uuid"
)

type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	courseRepo   repository.CourseRepository
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	courseRepo repository.CourseRepository,
) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo, courseRepo: courseRepo}
}

type SubmitFeedbackRequest struct {
	CourseID string `json:"courseId"`
	Feedback string `json:"feedback"`
}

func (s *FeedbackService) Submit(ctx context.Context, userID string, req SubmitFeedbackRequest) (*model.Feedback, error) {
	if req.CourseID == "" {
		return nil, common.ErrMissingCourseID
	}
	if req.Feedback == "" {
		return nil, common.ErrMissingFeedback
	}
	if _, err := uuid.Parse(req.CourseID); err != nil {
		return nil, common.ErrCourseNotFound
	}

	if _, err := s.courseRepo.FindByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	feedback := &model.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourseID:  req.CourseID,
		Feedback:  req.Feedback,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback, nil
}

func (s *FeedbackService) ListForCourse(ctx context.Context, courseID string) ([]model.Feedback, error) {
	if _, err := uuid.Parse(courseID); err != nil {
		return nil, common.ErrCourseNotFound
	}
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByCourse(ctx, courseID)
}
