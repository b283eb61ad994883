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
	"github.com/gosimple/slug"
)

type CourseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (s *CourseService) CreateCourse(ctx context.Context, userID string, req CreateCourseRequest) (*model.Course, error) {
	if req.Title == "" {
		return nil, common.ErrMissingTitle
	}

	course := &model.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, common.ErrDuplicateCourse) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	// A malformed ID can never match a UUID key; treat it as not found
	// rather than letting the driver reject the query.
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrCourseNotFound
	}
	return s.courseRepo.FindByID(ctx, id)
}

const defaultPageSize = 50

// ListCourses returns courses, newest first, optionally filtered by category.
func (s *CourseService) ListCourses(ctx context.Context, category string, page, pageSize int) ([]model.Course, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return s.courseRepo.List(ctx, category, pageSize, offset)
}
