package models

import "time"

// ProfileStatus is shared by student and faculty profiles.
type ProfileStatus string

const (
	ProfileStatusActive   ProfileStatus = "active"
	ProfileStatusInactive ProfileStatus = "inactive"
	ProfileStatusOnLeave  ProfileStatus = "on leave"
)

// Student represents a learner profile linked one-to-one with a User.
type Student struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id"`
	StudentID      string        `json:"student_id"`
	Program        string        `json:"program"`
	YearLevel      int           `json:"year_level"`
	Status         ProfileStatus `json:"status"`
	EnrollmentDate time.Time     `json:"enrollment_date"`
}

// StudentPatch carries a partial update; only non-nil fields are applied.
type StudentPatch struct {
	StudentID      *string        `json:"student_id,omitempty"`
	Program        *string        `json:"program,omitempty"`
	YearLevel      *int           `json:"year_level,omitempty"`
	Status         *ProfileStatus `json:"status,omitempty"`
	EnrollmentDate *time.Time     `json:"enrollment_date,omitempty"`
}

// StudentRecord is the denormalized student view assembled by walking
// student -> enrollments -> assignment -> course/faculty -> attendance/grades.
type StudentRecord struct {
	Student
	User        User               `json:"user"`
	Enrollments []EnrollmentRecord `json:"enrollments"`
}

// EnrollmentRecord is one per-enrollment block of a StudentRecord.
type EnrollmentRecord struct {
	Enrollment
	Course      *Course      `json:"course"`
	Faculty     *Faculty     `json:"faculty"`
	FacultyName string       `json:"faculty_name"`
	Semester    string       `json:"semester"`
	Year        int          `json:"year"`
	Attendance  []Attendance `json:"attendance"`
	Grades      []Grade      `json:"grades"`
}
