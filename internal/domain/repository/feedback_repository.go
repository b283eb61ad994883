package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tedumasters/internal/domain/model"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	ListByCourse(ctx context.Context, courseID string) ([]model.Feedback, error)
	Count(ctx context.Context) (int, error)
}

type pgFeedbackRepository struct {
	db *sql.DB
}

func NewPgFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &pgFeedbackRepository{db: db}
}

func (r *pgFeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	query := `INSERT INTO feedback (id, user_id, course_id, feedback, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.UserID, f.CourseID, f.Feedback, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgFeedbackRepository.Create: %w", err)
	}
	return nil
}

func (r *pgFeedbackRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Feedback, error) {
	query := `SELECT f.id, f.user_id, f.course_id, f.feedback, f.created_at, u.username
	          FROM feedback f
	          JOIN users u ON f.user_id = u.id
	          WHERE f.course_id = $1
	          ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("pgFeedbackRepository.ListByCourse query: %w", err)
	}
	defer rows.Close()

	items := []model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.CourseID, &f.Feedback, &f.CreatedAt, &f.Username); err != nil {
			return nil, fmt.Errorf("pgFeedbackRepository.ListByCourse scan: %w", err)
		}
		items = append(items, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgFeedbackRepository.ListByCourse rows.Err: %w", err)
	}
	return items, nil
}

func (r *pgFeedbackRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgFeedbackRepository.Count: %w", err)
	}
	return count, nil
}
