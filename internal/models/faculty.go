package models

import "time"

// Faculty represents a teaching-staff profile linked one-to-one with a User.
type Faculty struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	FacultyID  string        `json:"faculty_id"`
	Department string        `json:"department"`
	Position   string        `json:"position"`
	JoinDate   time.Time     `json:"join_date"`
	Status     ProfileStatus `json:"status"`
}

// FacultyPatch carries a partial update; only non-nil fields are applied.
type FacultyPatch struct {
	FacultyID  *string        `json:"faculty_id,omitempty"`
	Department *string        `json:"department,omitempty"`
	Position   *string        `json:"position,omitempty"`
	JoinDate   *time.Time     `json:"join_date,omitempty"`
	Status     *ProfileStatus `json:"status,omitempty"`
}

// FacultyDetail enriches a faculty profile with its user identity and the
// course assignments it teaches.
type FacultyDetail struct {
	Faculty
	User        User                   `json:"user"`
	Assignments []AssignmentWithCourse `json:"assignments"`
}
