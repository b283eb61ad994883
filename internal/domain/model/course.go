package model

import "time"

type Course struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	CreatedBy         string    `json:"createdBy"`
	CreatedByUsername *string   `json:"createdByUsername,omitempty"` // For display
	CreatedAt         time.Time `json:"createdAt"`
}
