package models

import "time"

// Project is one portfolio item in the "projects" collection.
type Project struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Role      string    `json:"role"`
	Stack     string    `json:"stack"`
	Link      string    `json:"link"`
	Image     string    `json:"image"`
	Blurb     string    `json:"blurb"`
	StartDate string    `json:"startDate,omitempty"`
	EndDate   string    `json:"endDate,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
