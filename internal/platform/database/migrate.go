package database

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema required by the platform. Uniqueness of
// usernames, emails, course slugs and enrollment pairs is enforced here, at
// the storage layer, so concurrent duplicate writes cannot both succeed.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			email VARCHAR(100) NOT NULL,
			password_hash TEXT NOT NULL,
			full_name VARCHAR(100) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT 'student',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ,
			CONSTRAINT users_username_key UNIQUE (username),
			CONSTRAINT users_email_key UNIQUE (email)
		);`,
		`CREATE TABLE IF NOT EXISTS courses (
			id UUID PRIMARY KEY,
			title VARCHAR(100) NOT NULL,
			slug VARCHAR(120) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category VARCHAR(50) NOT NULL DEFAULT '',
			created_by UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT courses_slug_key UNIQUE (slug)
		);`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			course_id UUID NOT NULL REFERENCES courses(id),
			enrolled_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT enrollments_user_id_course_id_key UNIQUE (user_id, course_id)
		);`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			course_id UUID NOT NULL REFERENCES courses(id),
			feedback TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
