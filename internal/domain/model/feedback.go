package model

import "time"

type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
	Username  *string   `json:"username,omitempty"` // For display
}
