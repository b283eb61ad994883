package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"tedumasters/internal/common"
	"tedumasters/internal/common/security"
	"tedumasters/internal/domain/model"
	"tedumasters/internal/domain/repository"
	"tedumasters/internal/platform/tokenstore"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// RegisterRequest mirrors the registration payload the original client sends.
// The passwordHash field carries the plaintext password; it is hashed here and
// never stored as received.
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	FullName     string `json:"fullName"`
	Role         string `json:"role"`
}

// Length caps match the column widths in the users table, so an over-long
// value fails validation instead of surfacing as a driver truncation error.
const (
	minPasswordLength = 8
	maxUsernameLength = 50
	maxEmailLength    = 100
	maxFullNameLength = 100
)

// Register enforces identity uniqueness, hashes the credential and persists
// the new user. The pre-checks give precise messages; the storage-level unique
// constraints remain authoritative, so a concurrent duplicate that slips past
// the pre-check still surfaces as the matching domain error from Create.
// Returns the scrubbed user and a fresh session token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, string, error) {
	if req.Username == "" || req.Email == "" || req.PasswordHash == "" {
		return nil, "", common.ErrMissingCredentials
	}
	if len(req.Username) > maxUsernameLength {
		return nil, "", common.ErrUsernameTooLong
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return nil, "", common.ErrInvalidEmail
	}
	if len(req.Email) > maxEmailLength {
		return nil, "", common.ErrEmailTooLong
	}
	if len(req.PasswordHash) < minPasswordLength {
		return nil, "", common.ErrPasswordTooShort
	}
	if len(req.FullName) > maxFullNameLength {
		return nil, "", common.ErrFullNameTooLong
	}
	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	if !model.ValidRole(role) {
		return nil, "", common.ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, "", common.ErrDuplicateUsername
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, "", common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := security.HashPassword(req.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		FullName:     req.FullName,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Constraint violations come back as the bare domain error.
		if errors.Is(err, common.ErrDuplicateUsername) || errors.Is(err, common.ErrDuplicateEmail) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	user.PasswordHash = "" // Never crosses the system boundary
	return user, token, nil
}

// Authenticate verifies the credentials. Unknown usernames and wrong passwords
// are deliberately indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	if username == "" || password == "" {
		return nil, "", common.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	user.PasswordHash = ""
	return user, token, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return common.ErrUnauthorized
	}
	if err := tokenstore.Revoke(ctx, jti, time.Until(expiresAt)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
