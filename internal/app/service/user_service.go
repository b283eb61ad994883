package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"tedumasters/internal/common"
	"tedumasters/internal/domain/model"
	"tedumasters/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"fullName,omitempty"`
}

func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies the provided fields. Email keeps its uniqueness
// guarantee through the users_email_key constraint.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if addr, err := mail.ParseAddress(*req.Email); err != nil || addr.Address != *req.Email {
			return nil, common.ErrInvalidEmail
		}
		if len(*req.Email) > maxEmailLength {
			return nil, common.ErrEmailTooLong
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		if len(*req.FullName) > maxFullNameLength {
			return nil, common.ErrFullNameTooLong
		}
		user.FullName = *req.FullName
	}
	now := time.Now().UTC()
	user.UpdatedAt = &now

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
