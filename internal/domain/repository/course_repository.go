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

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	FindBySlug(ctx context.Context, slug string) (*model.Course, error)
	List(ctx context.Context, category string, limit, offset int) ([]model.Course, error)
	Count(ctx context.Context) (int, error)
}

type pgCourseRepository struct {
	db *sql.DB
}

func NewPgCourseRepository(db *sql.DB) CourseRepository {
	return &pgCourseRepository{db: db}
}

func (r *pgCourseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `INSERT INTO courses (id, title, slug, description, category, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Slug, course.Description, course.Category, course.CreatedBy, course.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // courses_slug_key
			return common.ErrDuplicateCourse
		}
		return fmt.Errorf("pgCourseRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	return r.findOne(ctx, "c.id = $1", id)
}

func (r *pgCourseRepository) FindBySlug(ctx context.Context, slug string) (*model.Course, error) {
	return r.findOne(ctx, "c.slug = $1", slug)
}

func (r *pgCourseRepository) findOne(ctx context.Context, where string, arg interface{}) (*model.Course, error) {
	query := `SELECT c.id, c.title, c.slug, c.description, c.category,
	                 c.created_by, u.username, c.created_at
	          FROM courses c
	          LEFT JOIN users u ON c.created_by = u.id
	          WHERE ` + where
	course := &model.Course{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&course.ID, &course.Title, &course.Slug, &course.Description, &course.Category,
		&course.CreatedBy, &course.CreatedByUsername, &course.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrCourseNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.findOne: %w", err)
	}
	return course, nil
}

func (r *pgCourseRepository) List(ctx context.Context, category string, limit, offset int) ([]model.Course, error) {
	query := `SELECT c.id, c.title, c.slug, c.description, c.category,
	                 c.created_by, u.username, c.created_at
	          FROM courses c
	          LEFT JOIN users u ON c.created_by = u.id`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE c.category = $1`
		args = append(args, category)
	}
	query += fmt.Sprintf(` ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgCourseRepository.List query: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.Category,
			&c.CreatedBy, &c.CreatedByUsername, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgCourseRepository.List scan: %w", err)
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCourseRepository.List rows.Err: %w", err)
	}
	return courses, nil
}

func (r *pgCourseRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgCourseRepository.Count: %w", err)
	}
	return count, nil
}
