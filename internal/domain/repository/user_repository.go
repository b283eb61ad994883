package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tedumasters/internal/common"
	"tedumasters/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	Count(ctx context.Context) (int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

// Create inserts the user row. The unique constraints on username and email
// are the authoritative guard against concurrent duplicate registration; a
// violation is translated back into the matching domain error by constraint
// name.
func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, full_name, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FullName, user.Role, user.CreatedAt)
	if err != nil {
		if domainErr := translateUserConflict(err); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "username = $1", username)
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *pgUserRepository) findOne(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, full_name, role, created_at, updated_at
	          FROM users WHERE ` + where
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findOne: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET email = $1, full_name = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, user.Email, user.FullName, user.UpdatedAt, user.ID)
	if err != nil {
		if domainErr := translateUserConflict(err); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgUserRepository.Count: %w", err)
	}
	return count, nil
}

func translateUserConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return common.ErrDuplicateUsername
	case "users_email_key":
		return common.ErrDuplicateEmail
	}
	return common.ErrConflict
}
