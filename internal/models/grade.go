package models

import "time"

// Grade represents one graded item for an enrollment. Weight is a percentage.
type Grade struct {
	ID             int64     `json:"id"`
	EnrollmentID   int64     `json:"enrollment_id"`
	AssignmentName string    `json:"assignment_name"`
	Score          float64   `json:"score"`
	MaxScore       float64   `json:"max_score"`
	Weight         float64   `json:"weight"`
	Date           time.Time `json:"date"`
}

// GradePatch carries a partial update; only non-nil fields are applied.
type GradePatch struct {
	EnrollmentID   *int64     `json:"enrollment_id,omitempty"`
	AssignmentName *string    `json:"assignment_name,omitempty"`
	Score          *float64   `json:"score,omitempty"`
	MaxScore       *float64   `json:"max_score,omitempty"`
	Weight         *float64   `json:"weight,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
}
