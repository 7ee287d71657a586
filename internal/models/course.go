package models

// CourseStatus represents the lifecycle of a course offering.
type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusPending  CourseStatus = "pending"
	CourseStatusArchived CourseStatus = "archived"
)

// Course represents a catalog entry identified by its unique code.
type Course struct {
	ID          int64        `json:"id"`
	Code        string       `json:"code"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Credits     int          `json:"credits"`
	Department  string       `json:"department"`
	Status      CourseStatus `json:"status"`
}

// CoursePatch carries a partial update; only non-nil fields are applied.
type CoursePatch struct {
	Code        *string       `json:"code,omitempty"`
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Credits     *int          `json:"credits,omitempty"`
	Department  *string       `json:"department,omitempty"`
	Status      *CourseStatus `json:"status,omitempty"`
}

// CourseAssignment is one offering of a course, taught by one faculty member
// in one semester/year term.
type CourseAssignment struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"course_id"`
	FacultyID int64  `json:"faculty_id"`
	Semester  string `json:"semester"`
	Year      int    `json:"year"`
}

// CourseAssignmentPatch carries a partial update.
type CourseAssignmentPatch struct {
	CourseID  *int64  `json:"course_id,omitempty"`
	FacultyID *int64  `json:"faculty_id,omitempty"`
	Semester  *string `json:"semester,omitempty"`
	Year      *int    `json:"year,omitempty"`
}

// AssignmentWithFaculty enriches an assignment with the teaching faculty identity.
type AssignmentWithFaculty struct {
	CourseAssignment
	FacultyCode string `json:"faculty_code"`
	FacultyName string `json:"faculty_name"`
}

// AssignmentWithCourse enriches an assignment with its course.
type AssignmentWithCourse struct {
	CourseAssignment
	Course *Course `json:"course"`
}

// CourseDetail enriches a course with its assignments and their faculty.
type CourseDetail struct {
	Course
	Assignments []AssignmentWithFaculty `json:"assignments"`
}
