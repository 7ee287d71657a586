package repository

// Store bundles every entity table behind one explicitly constructed handle.
// The application entry point owns its lifetime and passes it down by
// reference, so tests can build a fresh, isolated instance.
type Store struct {
	Users       *UserRepository
	Students    *StudentRepository
	Faculty     *FacultyRepository
	Courses     *CourseRepository
	Assignments *CourseAssignmentRepository
	Enrollments *EnrollmentRepository
	Attendance  *AttendanceRepository
	Grades      *GradeRepository
	Events      *EventRepository
	Tokens      *TokenRepository
}

// NewStore constructs an empty store with fresh identity counters.
func NewStore() *Store {
	return &Store{
		Users:       NewUserRepository(),
		Students:    NewStudentRepository(),
		Faculty:     NewFacultyRepository(),
		Courses:     NewCourseRepository(),
		Assignments: NewCourseAssignmentRepository(),
		Enrollments: NewEnrollmentRepository(),
		Attendance:  NewAttendanceRepository(),
		Grades:      NewGradeRepository(),
		Events:      NewEventRepository(),
		Tokens:      NewTokenRepository(),
	}
}
