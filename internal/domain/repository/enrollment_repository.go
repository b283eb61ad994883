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

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error)
	Count(ctx context.Context) (int, error)
}

type pgEnrollmentRepository struct {
	db *sql.DB
}

func NewPgEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &pgEnrollmentRepository{db: db}
}

func (r *pgEnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	query := `INSERT INTO enrollments (id, user_id, course_id, enrolled_at)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.UserID, e.CourseID, e.EnrolledAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // enrollments_user_id_course_id_key
				return common.ErrAlreadyEnrolled
			case "23503": // course or user vanished between check and insert
				return common.ErrCourseNotFound
			}
		}
		return fmt.Errorf("pgEnrollmentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgEnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	query := `SELECT e.id, e.user_id, e.course_id, e.enrolled_at, c.title
	          FROM enrollments e
	          JOIN courses c ON e.course_id = c.id
	          WHERE e.user_id = $1
	          ORDER BY e.enrolled_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgEnrollmentRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt, &e.CourseTitle); err != nil {
			return nil, fmt.Errorf("pgEnrollmentRepository.ListByUser scan: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEnrollmentRepository.ListByUser rows.Err: %w", err)
	}
	return enrollments, nil
}

func (r *pgEnrollmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgEnrollmentRepository.Count: %w", err)
	}
	return count, nil
}
