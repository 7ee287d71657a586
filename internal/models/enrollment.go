package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentStatusEnrolled, EnrollmentStatusDropped, EnrollmentStatusCompleted:
		return true
	}
	return false
}

// Enrollment captures a student's registration in one term-offering of a course.
type Enrollment struct {
	ID                 int64            `json:"id"`
	StudentID          int64            `json:"student_id"`
	CourseAssignmentID int64            `json:"course_assignment_id"`
	EnrollmentDate     time.Time        `json:"enrollment_date"`
	Status             EnrollmentStatus `json:"status"`
}

// EnrollmentPatch carries a partial update; only non-nil fields are applied.
type EnrollmentPatch struct {
	StudentID          *int64            `json:"student_id,omitempty"`
	CourseAssignmentID *int64            `json:"course_assignment_id,omitempty"`
	EnrollmentDate     *time.Time        `json:"enrollment_date,omitempty"`
	Status             *EnrollmentStatus `json:"status,omitempty"`
}
