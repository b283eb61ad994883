package model

import "time"

type Enrollment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CourseID    string    `json:"courseId"`
	EnrolledAt  time.Time `json:"enrolledAt"`
	CourseTitle *string   `json:"courseTitle,omitempty"` // For display
}
